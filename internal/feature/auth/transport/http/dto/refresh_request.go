package dto

// RefreshReq represents the optional request body for the /refresh and
// /signout endpoints. The refresh token may also travel as a cookie.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}
