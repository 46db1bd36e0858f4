package dto

// RegisterRequest is the body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// LoginRequest is the body for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangeEmailRequest is the body for replacing the account email.
type ChangeEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
