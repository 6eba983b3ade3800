package dto

// RegisterRequest представляет данные формы регистрации.
type RegisterRequest struct {
	Email    string `form:"email"    json:"email"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// LoginRequest представляет данные формы входа.
type LoginRequest struct {
	Email    string `form:"email"    json:"email"`
	Password string `form:"password" json:"password"`
}

// SessionResponse возвращается после успешной регистрации или входа.
type SessionResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}
