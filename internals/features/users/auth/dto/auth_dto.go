package dto

/* =========================================================
   REQUEST DTOs
========================================================= */

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID              string  `json:"id"`
	UserName        string  `json:"user_name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	InstitutionID   *string `json:"institution_id,omitempty"`
	IsEmailVerified bool    `json:"is_email_verified"`
}
