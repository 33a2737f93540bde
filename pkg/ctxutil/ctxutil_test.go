package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserIDFromCtx(t *testing.T) {
	t.Parallel()

	voter := uuid.New()
	tests := []struct {
		name   string
		ctx    context.Context
		want   uuid.UUID
		wantOK bool
	}{
		{"authenticated voter", WithUserID(context.Background(), voter), voter, true},
		{"anonymous", context.Background(), uuid.Nil, false},
		{"nil id", WithUserID(context.Background(), uuid.Nil), uuid.Nil, false},
		{"string under key", context.WithValue(context.Background(), userIDKey, voter.String()), uuid.Nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := UserIDFromCtx(tt.ctx)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("UserIDFromCtx = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRequestIDFromCtx(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(WithRequestID(context.Background(), "vote-9c1e")); got != "vote-9c1e" {
		t.Errorf("RequestIDFromCtx = %q, want vote-9c1e", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("empty context: got %q", got)
	}
	if got := RequestIDFromCtx(context.WithValue(context.Background(), requestIDKey, 42)); got != "" {
		t.Errorf("int under key: got %q", got)
	}
}

func TestRoleHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role      string
		admin     bool
		moderator bool
	}{
		{role: "", admin: false, moderator: false},
		{role: "CONTRIBUTOR", admin: false, moderator: false},
		{role: "EDITOR", admin: false, moderator: true},
		{role: "ADMIN", admin: true, moderator: true},
		{role: "editor", admin: false, moderator: false},
	}
	for _, tt := range tests {
		t.Run("role="+tt.role, func(t *testing.T) {
			t.Parallel()
			ctx := WithUserRole(context.Background(), tt.role)
			if got := UserRoleFromCtx(ctx); got != tt.role {
				t.Errorf("UserRoleFromCtx = %q, want %q", got, tt.role)
			}
			if got := IsAdminCtx(ctx); got != tt.admin {
				t.Errorf("IsAdminCtx = %v, want %v", got, tt.admin)
			}
			if got := IsModeratorCtx(ctx); got != tt.moderator {
				t.Errorf("IsModeratorCtx = %v, want %v", got, tt.moderator)
			}
		})
	}

	if IsModeratorCtx(context.Background()) {
		t.Error("anonymous caller must not be a moderator")
	}
}
