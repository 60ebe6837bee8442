package types

import "fmt"

// AuthUser is the user payload returned by the identity provider.
type AuthUser struct {
	UUID        string   `json:"uuid"`
	Username    string   `json:"username"`
	Phone       string   `json:"phone"`
	PhoneNumber string   `json:"phone_number"`
	Email       *string  `json:"email"`
	LegalName   *string  `json:"legal_name"`
	Avatar      *string  `json:"avatar"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest fields
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}

	if r.Password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}

type LoginUserResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
	Data    AuthUser `json:"data"`
}

type RegisterUserRequest struct {
	Username    string `json:"username" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Token       string `json:"token"`
	Access      string `json:"-"`
}

// Validate validates the RegisterUserRequest fields
func (r *RegisterUserRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}

	if r.PhoneNumber == "" {
		return fmt.Errorf("phone_number is required")
	}

	if r.Password == "" {
		return fmt.Errorf("password is required")
	}

	return nil
}

type RegisterUserResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
}
