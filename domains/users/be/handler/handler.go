package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/users/be/service"
	usersapi "github.com/zenGate-Global/tenantgate/generated/go/users"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	meOperation             operation = "usersMe"
	listOperation           operation = "usersList"
	inviteOperation         operation = "usersInvite"
	updateRoleOperation     operation = "usersUpdateRole"
	deleteOperation         operation = "usersDelete"
	completeInviteOperation operation = "authCompleteInvite"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler wires the users service to the generated HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("users service is required")
	}
	if logger == nil {
		panic("logger is required")
	}

	return &Handler{svc: svc, logger: logger}
}

// InviteRoutes mounts the invite completion endpoint, which must stay reachable before the terms are accepted.
func (h *Handler) InviteRoutes(r chi.Router) {
	r.Post("/auth/complete-invite", h.CompleteInvite)
}

type completeInviteRequest struct {
	Password      string `json:"password" validate:"required,min=8"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) GetCurrentUser(ctx context.Context, _ usersapi.GetCurrentUserRequestObject) (usersapi.GetCurrentUserResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	user, err := h.svc.Me(ctx, id)
	if err != nil {
		status, problem := h.problem(ctx, meOperation, err)
		return usersapi.GetCurrentUserdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return usersapi.GetCurrentUser200JSONResponse(toAPIUser(user)), nil
}

func (h *Handler) ListUsers(ctx context.Context, request usersapi.ListUsersRequestObject) (usersapi.ListUsersResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	opts, err := buildListOptions(request.Params)
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return usersapi.ListUsersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	result, err := h.svc.List(ctx, id, opts)
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return usersapi.ListUsersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	items := make([]usersapi.User, 0, len(result.Users))
	for _, user := range result.Users {
		items = append(items, toAPIUser(user))
	}
	return usersapi.ListUsers200JSONResponse{Items: items, Total: result.Total, Skip: result.Skip, Limit: result.Limit}, nil
}

func (h *Handler) InviteUser(ctx context.Context, request usersapi.InviteUserRequestObject) (usersapi.InviteUserResponseObject, error) {
	roleID, err := bodyRoleID(request.Body, func(b *usersapi.InviteRequest) string { return b.RoleId })
	if err != nil {
		status, problem := h.problem(ctx, inviteOperation, err)
		return usersapi.InviteUserdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	inv, err := h.svc.Invite(ctx, id, service.InviteInput{Email: request.Body.Email, RoleID: roleID})
	if err != nil {
		status, problem := h.problem(ctx, inviteOperation, err)
		return usersapi.InviteUserdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return usersapi.InviteUser201JSONResponse{User: toAPIUser(inv.User), InviteLink: inv.Link}, nil
}

func (h *Handler) UpdateUserRole(ctx context.Context, request usersapi.UpdateUserRoleRequestObject) (usersapi.UpdateUserRoleResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	var roleID uuid.UUID
	userID, err := httpx.PathUUID(request.UserId)
	if err == nil {
		roleID, err = bodyRoleID(request.Body, func(b *usersapi.UpdateUserRoleRequest) string { return b.RoleId })
	}
	if err != nil {
		status, problem := h.problem(ctx, updateRoleOperation, err)
		return usersapi.UpdateUserRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	user, err := h.svc.UpdateRole(ctx, id, userID, roleID)
	if err != nil {
		status, problem := h.problem(ctx, updateRoleOperation, err)
		return usersapi.UpdateUserRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return usersapi.UpdateUserRole200JSONResponse(toAPIUser(user)), nil
}

func (h *Handler) DeleteUser(ctx context.Context, request usersapi.DeleteUserRequestObject) (usersapi.DeleteUserResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	userID, err := httpx.PathUUID(request.UserId)
	if err == nil {
		err = h.svc.Delete(ctx, id, userID)
	}
	if err != nil {
		status, problem := h.problem(ctx, deleteOperation, err)
		return usersapi.DeleteUserdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return usersapi.DeleteUser204Response{}, nil
}

// CompleteInvite is mounted outside the terms gate.
func (h *Handler) CompleteInvite(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req completeInviteRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Fail(w, r, h.logger, string(completeInviteOperation), err)
		return
	}

	if err := h.svc.CompleteInvite(r.Context(), id, service.CompleteInviteInput{Password: req.Password, TermsAccepted: req.TermsAccepted}); err != nil {
		httpx.Fail(w, r, h.logger, string(completeInviteOperation), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) problem(ctx context.Context, op operation, err error) (int, usersapi.Problem) {
	problem := httpx.Report(ctx, h.logger, string(op), err)
	return problem.Status, problem
}

// bodyRoleID validates body and parses its role_id.
func bodyRoleID[T any](body *T, roleID func(*T) string) (uuid.UUID, error) {
	if err := httpx.Validate(body); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(roleID(body))
	if err != nil {
		return uuid.Nil, apperr.ValidationField("role_id", "must be a valid UUID")
	}
	return id, nil
}

func buildListOptions(params usersapi.ListUsersParams) (service.ListOptions, error) {
	skip, limit, err := httpx.Paging(params.Skip, params.Limit, defaultLimit, maxLimit)
	if err != nil {
		return service.ListOptions{}, err
	}

	opts := service.ListOptions{Skip: skip, Limit: limit}
	if params.TenantId != nil && *params.TenantId != "" {
		tenantID, err := uuid.Parse(*params.TenantId)
		if err != nil {
			return service.ListOptions{}, apperr.ValidationField("tenant_id", "must be a valid UUID")
		}
		opts.TenantID = &tenantID
	}
	return opts, nil
}

func toAPIUser(user service.User) usersapi.User {
	out := usersapi.User{
		Id:              user.ID,
		Email:           user.Email,
		TenantId:        user.TenantID,
		RoleId:          user.RoleID,
		TermsAcceptedAt: user.TermsAcceptedAt,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
	if user.Role != nil {
		permissions := user.Role.Permissions
		if permissions == nil {
			permissions = []string{}
		}
		out.Role = &usersapi.RoleSummary{
			Id:          user.Role.ID,
			Name:        user.Role.Name,
			IsAdminRole: user.Role.IsAdminRole,
			Permissions: permissions,
		}
	}
	return out
}

var _ usersapi.StrictServerInterface = (*Handler)(nil)
