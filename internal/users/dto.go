package users

import (
	"strings"

	"github.com/angelmondragon/farmtofork-backend/pkg/db/models"
)

// Login outcome messages. Failures are reported through the message, not as errors.
const (
	MessageUserNotFound    = "User not found"
	MessageInvalidPassword = "Invalid password"
	MessageRoleMismatch    = "Role mismatch"
	MessageLoginSuccessful = "Login successful"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RegisterInput carries the fields persisted on registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput is the credential triple checked by Login.
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// LoginResult always carries Message; the remaining fields are set only on success.
type LoginResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Token   string `json:"token,omitempty"`
}

// Succeeded reports whether the login passed every check.
func (r LoginResult) Succeeded() bool {
	return r.Token != ""
}

func (in RegisterInput) toModel() *models.User {
	return &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     strings.TrimSpace(in.Role),
	}
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
