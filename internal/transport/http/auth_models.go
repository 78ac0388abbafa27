package http

import "time"

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid password"`
}

// ValidationErrorResponse lists every missing required field.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Name            string `json:"name" example:"Maria Silva"`
	CPF             string `json:"cpf" example:"12345678901"`
	State           string `json:"state" example:"SP"`
	City            string `json:"city" example:"São Paulo"`
	Street          string `json:"street" example:"Rua das Flores"`
	District        string `json:"district" example:"Centro"`
	Number          string `json:"number" example:"100"`
	Email           string `json:"email" example:"maria@example.com"`
	Phone           string `json:"phone" example:"+55 11 91234-5678"`
	Password        string `json:"password" example:"StrongPass!23"`
	ConfirmPassword string `json:"confirmpassword" example:"StrongPass!23"`
}

// LoginRequest carries email login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"StrongPass!23"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message string `json:"message" example:"authentication successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ForgotPasswordRequest asks for a reset token to be mailed.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"maria@example.com"`
}

// ResetPasswordRequest consumes a mailed reset token.
type ResetPasswordRequest struct {
	Email       string `json:"email" example:"maria@example.com"`
	Token       string `json:"token" example:"8f14e45fceea167a5a36dedd4bea2543c9fdd2a1"`
	NewPassword string `json:"password" example:"NewPass!45"`
}

// UserResponse wraps the sanitized profile returned by the private user
// route; credential and reset fields never appear here.
type UserResponse struct {
	ID        string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name      string    `json:"name" example:"Maria Silva"`
	CPF       string    `json:"cpf" example:"12345678901"`
	Email     string    `json:"email" example:"maria@example.com"`
	Phone     string    `json:"phone" example:"+55 11 91234-5678"`
	State     string    `json:"state" example:"SP"`
	City      string    `json:"city" example:"São Paulo"`
	Street    string    `json:"street" example:"Rua das Flores"`
	District  string    `json:"district" example:"Centro"`
	Number    string    `json:"number" example:"100"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

// UserExistsResponse answers the identifier probe.
type UserExistsResponse struct {
	IsUserAlreadyExists bool `json:"isUserAlreadyExists" example:"true"`
}

// ChargeRequest carries the payment fields proxied to the gateway.
type ChargeRequest struct {
	Customer    string  `json:"customer" example:"cus_000005112"`
	BillingType string  `json:"billingType" example:"PIX"`
	DueDate     string  `json:"dueDate" example:"2024-02-01"`
	Value       float64 `json:"value" example:"149.90"`
}

// ChargeResponse is returned when the gateway accepts a charge.
type ChargeResponse struct {
	Message string         `json:"message" example:"charge created successfully"`
	URL     string         `json:"url" example:"https://www.asaas.com/i/0806..."`
	Data    map[string]any `json:"data"`
}
