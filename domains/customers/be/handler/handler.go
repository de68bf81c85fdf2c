package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/customers/be/service"
	customersapi "github.com/zenGate-Global/tenantgate/generated/go/customers"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	createOperation operation = "customersCreate"
	listOperation   operation = "customersList"
	getOperation    operation = "customersGet"
	updateOperation operation = "customersUpdate"
	deleteOperation operation = "customersDelete"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler exposes the customers service over the generated HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("customers service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) CreateCustomer(ctx context.Context, request customersapi.CreateCustomerRequestObject) (customersapi.CreateCustomerResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return customersapi.CreateCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	customer, err := h.svc.Create(ctx, id, service.CreateInput{
		Name:  request.Body.Name,
		Email: request.Body.Email,
		Data:  customerData(request.Body.CustomerData),
	})
	if err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return customersapi.CreateCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customersapi.CreateCustomer201JSONResponse{
		Headers: customersapi.CreateCustomer201ResponseHeaders{Location: fmt.Sprintf("/api/v1/customers/%s", customer.ID)},
		Body:    toAPICustomer(customer),
	}, nil
}

func (h *Handler) ListCustomers(ctx context.Context, request customersapi.ListCustomersRequestObject) (customersapi.ListCustomersResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	skip, limit, err := httpx.Paging(request.Params.Skip, request.Params.Limit, defaultLimit, maxLimit)
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return customersapi.ListCustomersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	page, err := h.svc.List(ctx, id, service.ListOptions{Skip: skip, Limit: limit})
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return customersapi.ListCustomersdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	items := make([]customersapi.Customer, 0, len(page.Customers))
	for _, c := range page.Customers {
		items = append(items, toAPICustomer(c))
	}
	return customersapi.ListCustomers200JSONResponse{Items: items, Total: page.Total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (h *Handler) GetCustomer(ctx context.Context, request customersapi.GetCustomerRequestObject) (customersapi.GetCustomerResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	customerID, err := customerUUID(request.CustomerId)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, err)
		return customersapi.GetCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	customer, err := h.svc.Get(ctx, id, customerID)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, err)
		return customersapi.GetCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customersapi.GetCustomer200JSONResponse(toAPICustomer(customer)), nil
}

// UpdateCustomer applies a partial update. An empty email clears the stored address.
func (h *Handler) UpdateCustomer(ctx context.Context, request customersapi.UpdateCustomerRequestObject) (customersapi.UpdateCustomerResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	customerID, err := customerUUID(request.CustomerId)
	if err == nil {
		err = httpx.Validate(request.Body)
	}
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return customersapi.UpdateCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	customer, err := h.svc.Update(ctx, id, customerID, service.UpdateInput{
		Name:  request.Body.Name,
		Email: request.Body.Email,
		Data:  customerData(request.Body.CustomerData),
	})
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return customersapi.UpdateCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customersapi.UpdateCustomer200JSONResponse(toAPICustomer(customer)), nil
}

func (h *Handler) DeleteCustomer(ctx context.Context, request customersapi.DeleteCustomerRequestObject) (customersapi.DeleteCustomerResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	customerID, err := customerUUID(request.CustomerId)
	if err == nil {
		err = h.svc.Delete(ctx, id, customerID)
	}
	if err != nil {
		status, problem := h.problem(ctx, deleteOperation, err)
		return customersapi.DeleteCustomerdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customersapi.DeleteCustomer204Response{}, nil
}

func (h *Handler) problem(ctx context.Context, op operation, err error) (int, customersapi.Problem) {
	problem := httpx.Report(ctx, h.logger, string(op), err)
	return problem.Status, problem
}

func customerUUID(raw string) (uuid.UUID, error) {
	customerID, err := httpx.PathUUID(raw)
	if err != nil {
		return uuid.Nil, service.ErrCustomerNotFound
	}
	return customerID, nil
}

func customerData(data *map[string]interface{}) map[string]any {
	if data == nil {
		return nil
	}
	return *data
}

func toAPICustomer(c service.Customer) customersapi.Customer {
	return customersapi.Customer{
		Id:           c.ID,
		TenantId:     c.TenantID,
		Name:         c.Name,
		Email:        c.Email,
		CustomerData: c.Data,
		CreatedById:  c.CreatedBy,
		UpdatedById:  c.UpdatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

var _ customersapi.StrictServerInterface = (*Handler)(nil)
