package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/roles/be/service"
	rolesapi "github.com/zenGate-Global/tenantgate/generated/go/roles"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	createOperation operation = "rolesCreate"
	listOperation   operation = "rolesList"
	getOperation    operation = "rolesGet"
	updateOperation operation = "rolesUpdate"
	deleteOperation operation = "rolesDelete"
)

// Handler wires the roles service to the generated HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("roles service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) CreateRole(ctx context.Context, request rolesapi.CreateRoleRequestObject) (rolesapi.CreateRoleResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return rolesapi.CreateRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	input := service.CreateInput{Name: request.Body.Name}
	if request.Body.Permissions != nil {
		input.Permissions = *request.Body.Permissions
	}

	role, err := h.svc.Create(ctx, id, input)
	if err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return rolesapi.CreateRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return rolesapi.CreateRole201JSONResponse(toAPIRole(role)), nil
}

func (h *Handler) ListRoles(ctx context.Context, _ rolesapi.ListRolesRequestObject) (rolesapi.ListRolesResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	roles, err := h.svc.List(ctx, id)
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return rolesapi.ListRolesdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	out := make(rolesapi.ListRoles200JSONResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, toAPIRole(role))
	}
	return out, nil
}

func (h *Handler) GetRole(ctx context.Context, request rolesapi.GetRoleRequestObject) (rolesapi.GetRoleResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	roleID, err := httpx.PathUUID(request.RoleId)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, err)
		return rolesapi.GetRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	role, err := h.svc.Get(ctx, id, roleID)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, err)
		return rolesapi.GetRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return rolesapi.GetRole200JSONResponse(toAPIRole(role)), nil
}

func (h *Handler) UpdateRole(ctx context.Context, request rolesapi.UpdateRoleRequestObject) (rolesapi.UpdateRoleResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	roleID, err := httpx.PathUUID(request.RoleId)
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return rolesapi.UpdateRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return rolesapi.UpdateRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	role, err := h.svc.Update(ctx, id, roleID, service.UpdateInput{Name: request.Body.Name, Permissions: request.Body.Permissions})
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return rolesapi.UpdateRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return rolesapi.UpdateRole200JSONResponse(toAPIRole(role)), nil
}

func (h *Handler) DeleteRole(ctx context.Context, request rolesapi.DeleteRoleRequestObject) (rolesapi.DeleteRoleResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	roleID, err := httpx.PathUUID(request.RoleId)
	if err == nil {
		err = h.svc.Delete(ctx, id, roleID)
	}
	if err != nil {
		status, problem := h.problem(ctx, deleteOperation, err)
		return rolesapi.DeleteRoledefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return rolesapi.DeleteRole204Response{}, nil
}

// ListPermissions returns the permission catalogue grouped by resource.
func (h *Handler) ListPermissions(_ context.Context, _ rolesapi.ListPermissionsRequestObject) (rolesapi.ListPermissionsResponseObject, error) {
	groups := h.svc.Catalogue()
	out := make(rolesapi.ListPermissions200JSONResponse, 0, len(groups))
	for _, g := range groups {
		group := rolesapi.PermissionGroup{GroupName: g.Name, Permissions: make([]rolesapi.Permission, 0, len(g.Permissions))}
		for _, p := range g.Permissions {
			group.Permissions = append(group.Permissions, rolesapi.Permission{Name: p.Name, Description: p.Description, Value: p.Value})
		}
		out = append(out, group)
	}
	return out, nil
}

func (h *Handler) problem(ctx context.Context, op operation, err error) (int, rolesapi.Problem) {
	problem := httpx.Report(ctx, h.logger, string(op), err)
	return problem.Status, problem
}

func toAPIRole(role service.Role) rolesapi.Role {
	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return rolesapi.Role{
		Id:            role.ID,
		Name:          role.Name,
		IsAdminRole:   role.IsAdminRole,
		PermissionSet: role.PermissionSet,
		Permissions:   permissions,
		CreatedAt:     role.CreatedAt,
		UpdatedAt:     role.UpdatedAt,
	}
}

var _ rolesapi.StrictServerInterface = (*Handler)(nil)
