package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

// Provision returns the user with the given email, creating it first if
// needed. created reports whether a new user was stored. This is an operator
// action and is not gated on the caller's role.
func (s *Service) Provision(ctx context.Context, input ProvisionInput) (user *domain.User, created bool, err error) {
	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("user.Provision: %w", err)
	}

	user, err = s.users.Create(ctx, &domain.User{Email: input.Email, Name: input.Name, Role: input.Role})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent provision of the same email.
		existing, err := s.users.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, false, fmt.Errorf("user.Provision: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("user.Provision: %w", err)
	}

	s.log.InfoContext(ctx, "user provisioned", "user_id", user.ID, "role", user.Role)
	return user, true, nil
}

// IssueToken mints an identity token carrying the user's stored role.
func (s *Service) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user.IssueToken: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Role.String())
	if err != nil {
		return "", fmt.Errorf("user.IssueToken: %w", err)
	}
	return token, nil
}

// IssueTokenByEmail is IssueToken for operators who know the email.
func (s *Service) IssueTokenByEmail(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("user.IssueTokenByEmail: %w", err)
	}
	return s.IssueToken(ctx, u.ID)
}
