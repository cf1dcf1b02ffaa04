package auth

type AuthResponse struct {
	Admin       AdminResponse `json:"admin"`
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
}
