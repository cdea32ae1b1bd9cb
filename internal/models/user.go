package models

// Credentials is the payload of a login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegistrationProfile is the payload of a registration request. Avatar holds
// an image encoded as a data URL and is sent as null when absent.
type RegistrationProfile struct {
	Name     string  `json:"name" validate:"required"`
	NameID   string  `json:"nameId" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Avatar   *string `json:"avatar"`
}
