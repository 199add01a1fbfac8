package api

// Response is the success envelope returned by handlers on the happy path.
// Success is derived from the status code so the flag can never contradict it.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// NewResponse constructs a success envelope with the given status code,
// payload and message. An empty message defaults to "Success".
func NewResponse(statusCode int, data any, message string) Response {
	if message == "" {
		message = "Success"
	}
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
