package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterData struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfileUpdate carries only the fields the user changed.
type ProfileUpdate struct {
	Name                 string `json:"name,omitempty" validate:"omitempty,max=255"`
	Email                string `json:"email,omitempty" validate:"omitempty,email"`
	Password             string `json:"password,omitempty" validate:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"eqfield=Password"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p == ProfileUpdate{}
}

type ProfileResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
