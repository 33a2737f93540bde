package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/focloireacht-backend/internal/domain"
)

type userAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
}

// AdminHandler serves user administration endpoints.
type AdminHandler struct {
	users userAdminService
	log   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users userAdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, log: logger.With("handler", "admin")}
}

type usersResponse struct {
	Users []userView `json:"users"`
	Total int        `json:"total"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

// ListUsers handles GET /admin/users?limit=&offset=.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	users, total, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := usersResponse{Users: make([]userView, 0, len(users)), Total: total}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserView(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

// SetRole handles PUT /admin/users/{id}/role.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req setRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.users.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(*u))
}
