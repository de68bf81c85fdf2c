package handler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/items/be/service"
	itemsapi "github.com/zenGate-Global/tenantgate/generated/go/items"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	createOperation      operation = "itemsCreate"
	listOperation        operation = "itemsList"
	getOperation         operation = "itemsGet"
	updateOperation      operation = "itemsUpdate"
	deleteOperation      operation = "itemsDelete"
	imageUploadOperation operation = "itemsImageUploadURL"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler exposes the items service over the generated HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("items service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) CreateItem(ctx context.Context, request itemsapi.CreateItemRequestObject) (itemsapi.CreateItemResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return itemsapi.CreateItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	input := service.CreateInput{Name: request.Body.Name, Price: request.Body.Price}
	if request.Body.Quantity != nil {
		input.Quantity = *request.Body.Quantity
	}

	item, err := h.svc.Create(ctx, id, input)
	if err != nil {
		status, problem := h.problem(ctx, createOperation, err)
		return itemsapi.CreateItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return itemsapi.CreateItem201JSONResponse{
		Headers: itemsapi.CreateItem201ResponseHeaders{Location: fmt.Sprintf("/api/v1/items/%s", item.ID)},
		Body:    toAPIItem(item),
	}, nil
}

func (h *Handler) ListItems(ctx context.Context, request itemsapi.ListItemsRequestObject) (itemsapi.ListItemsResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	skip, limit, err := httpx.Paging(request.Params.Skip, request.Params.Limit, defaultLimit, maxLimit)
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return itemsapi.ListItemsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	page, err := h.svc.List(ctx, id, service.ListOptions{Skip: skip, Limit: limit})
	if err != nil {
		status, problem := h.problem(ctx, listOperation, err)
		return itemsapi.ListItemsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	items := make([]itemsapi.Item, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toAPIItem(item))
	}
	return itemsapi.ListItems200JSONResponse{Items: items, Total: page.Total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (h *Handler) GetItem(ctx context.Context, request itemsapi.GetItemRequestObject) (itemsapi.GetItemResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	itemID, err := httpx.PathUUID(request.ItemId)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, service.ErrItemNotFound)
		return itemsapi.GetItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	item, err := h.svc.Get(ctx, id, itemID)
	if err != nil {
		status, problem := h.problem(ctx, getOperation, err)
		return itemsapi.GetItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return itemsapi.GetItem200JSONResponse(toAPIItem(item)), nil
}

func (h *Handler) UpdateItem(ctx context.Context, request itemsapi.UpdateItemRequestObject) (itemsapi.UpdateItemResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	itemID, err := httpx.PathUUID(request.ItemId)
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, service.ErrItemNotFound)
		return itemsapi.UpdateItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return itemsapi.UpdateItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	item, err := h.svc.Update(ctx, id, itemID, service.UpdateInput{
		Name:      request.Body.Name,
		Price:     request.Body.Price,
		Quantity:  request.Body.Quantity,
		ImagePath: request.Body.ImagePath,
	})
	if err != nil {
		status, problem := h.problem(ctx, updateOperation, err)
		return itemsapi.UpdateItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return itemsapi.UpdateItem200JSONResponse(toAPIItem(item)), nil
}

func (h *Handler) DeleteItem(ctx context.Context, request itemsapi.DeleteItemRequestObject) (itemsapi.DeleteItemResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	itemID, err := httpx.PathUUID(request.ItemId)
	if err != nil {
		err = service.ErrItemNotFound
	} else {
		err = h.svc.Delete(ctx, id, itemID)
	}
	if err != nil {
		status, problem := h.problem(ctx, deleteOperation, err)
		return itemsapi.DeleteItemdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return itemsapi.DeleteItem204Response{}, nil
}

// CreateItemImageUploadUrl presigns a PUT for the item image. The client stores the returned image_path on the
// item once the upload succeeds.
func (h *Handler) CreateItemImageUploadUrl(ctx context.Context, request itemsapi.CreateItemImageUploadUrlRequestObject) (itemsapi.CreateItemImageUploadUrlResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	itemID, err := httpx.PathUUID(request.ItemId)
	if err != nil {
		status, problem := h.problem(ctx, imageUploadOperation, service.ErrItemNotFound)
		return itemsapi.CreateItemImageUploadUrldefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, imageUploadOperation, err)
		return itemsapi.CreateItemImageUploadUrldefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	upload, err := h.svc.ImageUploadURL(ctx, id, itemID, request.Body.ContentType)
	if err != nil {
		status, problem := h.problem(ctx, imageUploadOperation, err)
		return itemsapi.CreateItemImageUploadUrldefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return itemsapi.CreateItemImageUploadUrl200JSONResponse{
		UploadUrl: upload.UploadURL,
		Method:    upload.Method,
		ImagePath: upload.ImagePath,
		ExpiresAt: upload.ExpiresAt,
	}, nil
}

func (h *Handler) problem(ctx context.Context, op operation, err error) (int, itemsapi.Problem) {
	problem := httpx.Report(ctx, h.logger, string(op), err)
	return problem.Status, problem
}

func toAPIItem(item service.Item) itemsapi.Item {
	return itemsapi.Item{
		Id:        item.ID,
		TenantId:  item.TenantID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		ImagePath: item.ImagePath,
		ImageUrl:  item.ImageURL,
		CreatedBy: item.CreatedBy,
		UpdatedBy: item.UpdatedBy,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

var _ itemsapi.StrictServerInterface = (*Handler)(nil)
