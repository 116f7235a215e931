package models

// User is an authenticated account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session is a persisted login.
type Session struct {
	Token     string `json:"token"`
	User      User   `json:"user"`
	CreatedAt int64  `json:"created_at"`
}
