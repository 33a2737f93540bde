package user

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// ProvisionInput holds parameters for creating or fetching a user.
type ProvisionInput struct {
	Email string
	Name  string
	// Role applies only when the user is created. Empty means CONTRIBUTOR.
	Role domain.UserRole
}

// Validate validates and normalizes the provision input.
func (i *ProvisionInput) Validate() error {
	var errs []domain.FieldError

	i.Email = strings.ToLower(strings.TrimSpace(i.Email))
	i.Name = strings.TrimSpace(i.Name)

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil || len(i.Email) > 255 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}

	if len(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}

	if i.Role == "" {
		i.Role = domain.UserRoleContributor
	} else if !i.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "must be CONTRIBUTOR, EDITOR or ADMIN"})
	}

	return domain.CollectValidation(errs)
}
