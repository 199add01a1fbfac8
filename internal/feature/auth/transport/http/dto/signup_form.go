// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupForm represents the multipart form fields of the /signup endpoint.
// Presence validation is intentionally left to the usecase so that blank and
// whitespace-only fields produce the same failure.
type SignupForm struct {
	FullName string `form:"fullName"`
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}
