package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// SetUserRole changes the role of a user (admin only).
func (s *Service) SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be CONTRIBUTOR, EDITOR or ADMIN")
	}

	// Prevent admin from demoting themselves.
	if callerID == targetUserID && role != domain.UserRoleAdmin {
		return nil, domain.NewValidationError("role", "cannot demote yourself")
	}

	user, err := s.users.UpdateRole(ctx, targetUserID, role)
	if err != nil {
		return nil, fmt.Errorf("user.SetUserRole: %w", err)
	}

	s.log.InfoContext(ctx, "user role updated",
		slog.String("target_user_id", targetUserID.String()),
		slog.String("new_role", role.String()),
	)

	return user, nil
}

// SetRoleByEmail changes a user's role on behalf of an operator. Unlike
// SetUserRole it is not gated on the caller.
func (s *Service) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be CONTRIBUTOR, EDITOR or ADMIN")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user.SetRoleByEmail: %w", err)
	}
	updated, err := s.users.UpdateRole(ctx, u.ID, role)
	if err != nil {
		return nil, fmt.Errorf("user.SetRoleByEmail: %w", err)
	}

	s.log.InfoContext(ctx, "user role updated by operator", "target_user_id", u.ID, "new_role", role)
	return updated, nil
}

// ListUsers returns a page of users and the total count (admin only).
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, 0, domain.ErrForbidden
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("user.ListUsers: %w", err)
	}

	counts, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("user.CountUsers: %w", err)
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	return users, total, nil
}
