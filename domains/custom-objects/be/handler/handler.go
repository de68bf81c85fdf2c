package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/custom-objects/be/service"
	customobjectsapi "github.com/zenGate-Global/tenantgate/generated/go/custom-objects"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

type operation string

const (
	createObjectOperation  operation = "customObjectsCreate"
	listObjectsOperation   operation = "customObjectsList"
	getObjectOperation     operation = "customObjectsGet"
	addFieldOperation      operation = "customObjectsAddField"
	createRecordOperation  operation = "recordsCreate"
	listRecordsOperation   operation = "recordsList"
	getRecordOperation     operation = "recordsGet"
	patchRecordOperation   operation = "recordsPatch"
	replaceRecordOperation operation = "recordsReplace"
	deleteRecordOperation  operation = "recordsDelete"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler wires the custom objects service to the generated HTTP contract.
type Handler struct {
	svc    service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("custom objects service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) CreateCustomObject(ctx context.Context, request customobjectsapi.CreateCustomObjectRequestObject) (customobjectsapi.CreateCustomObjectResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, createObjectOperation, err)
		return customobjectsapi.CreateCustomObjectdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	obj, err := h.svc.CreateObject(ctx, id, service.CreateObjectInput{Name: request.Body.Name, Slug: request.Body.Slug})
	if err != nil {
		status, problem := h.problem(ctx, createObjectOperation, err)
		return customobjectsapi.CreateCustomObjectdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.CreateCustomObject201JSONResponse{
		Headers: customobjectsapi.CreateCustomObject201ResponseHeaders{Location: fmt.Sprintf("/api/v1/custom-objects/%s", obj.Slug)},
		Body:    toAPIObject(obj),
	}, nil
}

func (h *Handler) ListCustomObjects(ctx context.Context, _ customobjectsapi.ListCustomObjectsRequestObject) (customobjectsapi.ListCustomObjectsResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	objects, err := h.svc.ListObjects(ctx, id)
	if err != nil {
		status, problem := h.problem(ctx, listObjectsOperation, err)
		return customobjectsapi.ListCustomObjectsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	out := make(customobjectsapi.ListCustomObjects200JSONResponse, 0, len(objects))
	for _, obj := range objects {
		out = append(out, toAPIObject(obj))
	}
	return out, nil
}

func (h *Handler) GetCustomObject(ctx context.Context, request customobjectsapi.GetCustomObjectRequestObject) (customobjectsapi.GetCustomObjectResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	obj, err := h.svc.GetObject(ctx, id, request.ObjectSlug)
	if err != nil {
		status, problem := h.problem(ctx, getObjectOperation, err)
		return customobjectsapi.GetCustomObjectdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.GetCustomObject200JSONResponse(toAPIObject(obj)), nil
}

func (h *Handler) CreateCustomField(ctx context.Context, request customobjectsapi.CreateCustomFieldRequestObject) (customobjectsapi.CreateCustomFieldResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, addFieldOperation, err)
		return customobjectsapi.CreateCustomFielddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	input := service.CreateFieldInput{Name: request.Body.Name, Slug: request.Body.Slug, Type: request.Body.FieldType}
	if request.Body.IsRequired != nil {
		input.Required = *request.Body.IsRequired
	}
	if request.Body.Options != nil {
		input.Options = *request.Body.Options
	}

	field, err := h.svc.AddField(ctx, id, request.ObjectSlug, input)
	if err != nil {
		status, problem := h.problem(ctx, addFieldOperation, err)
		return customobjectsapi.CreateCustomFielddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.CreateCustomField201JSONResponse(toAPIField(field)), nil
}

func (h *Handler) CreateRecord(ctx context.Context, request customobjectsapi.CreateRecordRequestObject) (customobjectsapi.CreateRecordResponseObject, error) {
	if err := httpx.Validate(request.Body); err != nil {
		status, problem := h.problem(ctx, createRecordOperation, err)
		return customobjectsapi.CreateRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	id, _ := auth.IdentityFromContext(ctx)

	record, err := h.svc.CreateRecord(ctx, id, request.ObjectSlug, request.Body.Data)
	if err != nil {
		status, problem := h.problem(ctx, createRecordOperation, err)
		return customobjectsapi.CreateRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.CreateRecord201JSONResponse{
		Headers: customobjectsapi.CreateRecord201ResponseHeaders{
			Location: fmt.Sprintf("/api/v1/custom-objects/%s/records/%s", request.ObjectSlug, record.ID),
		},
		Body: toAPIRecord(record),
	}, nil
}

func (h *Handler) ListRecords(ctx context.Context, request customobjectsapi.ListRecordsRequestObject) (customobjectsapi.ListRecordsResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	skip, limit, err := httpx.Paging(request.Params.Skip, request.Params.Limit, defaultLimit, maxLimit)
	if err != nil {
		status, problem := h.problem(ctx, listRecordsOperation, err)
		return customobjectsapi.ListRecordsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	page, err := h.svc.ListRecords(ctx, id, request.ObjectSlug, service.ListOptions{Skip: skip, Limit: limit})
	if err != nil {
		status, problem := h.problem(ctx, listRecordsOperation, err)
		return customobjectsapi.ListRecordsdefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	items := make([]customobjectsapi.Record, 0, len(page.Records))
	for _, record := range page.Records {
		items = append(items, toAPIRecord(record))
	}
	return customobjectsapi.ListRecords200JSONResponse{Items: items, Total: page.Total, Skip: page.Skip, Limit: page.Limit}, nil
}

func (h *Handler) GetRecord(ctx context.Context, request customobjectsapi.GetRecordRequestObject) (customobjectsapi.GetRecordResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	recordID, err := recordUUID(request.RecordId)
	if err != nil {
		status, problem := h.problem(ctx, getRecordOperation, err)
		return customobjectsapi.GetRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}

	record, err := h.svc.GetRecord(ctx, id, request.ObjectSlug, recordID)
	if err != nil {
		status, problem := h.problem(ctx, getRecordOperation, err)
		return customobjectsapi.GetRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.GetRecord200JSONResponse(toAPIRecord(record)), nil
}

// PatchRecord validates only the supplied fields and merges them onto the stored data.
func (h *Handler) PatchRecord(ctx context.Context, request customobjectsapi.PatchRecordRequestObject) (customobjectsapi.PatchRecordResponseObject, error) {
	record, err := h.writeRecord(ctx, request.ObjectSlug, request.RecordId, request.Body, h.svc.PatchRecord)
	if err != nil {
		status, problem := h.problem(ctx, patchRecordOperation, err)
		return customobjectsapi.PatchRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.PatchRecord200JSONResponse(toAPIRecord(record)), nil
}

func (h *Handler) ReplaceRecord(ctx context.Context, request customobjectsapi.ReplaceRecordRequestObject) (customobjectsapi.ReplaceRecordResponseObject, error) {
	record, err := h.writeRecord(ctx, request.ObjectSlug, request.RecordId, request.Body, h.svc.ReplaceRecord)
	if err != nil {
		status, problem := h.problem(ctx, replaceRecordOperation, err)
		return customobjectsapi.ReplaceRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.ReplaceRecord200JSONResponse(toAPIRecord(record)), nil
}

type recordWriter func(ctx context.Context, id auth.Identity, slug string, recordID uuid.UUID, data map[string]any) (service.Record, error)

func (h *Handler) writeRecord(ctx context.Context, slug, rawID string, body *customobjectsapi.RecordRequest, write recordWriter) (service.Record, error) {
	id, _ := auth.IdentityFromContext(ctx)

	recordID, err := recordUUID(rawID)
	if err != nil {
		return service.Record{}, err
	}
	if err := httpx.Validate(body); err != nil {
		return service.Record{}, err
	}
	return write(ctx, id, slug, recordID, body.Data)
}

func (h *Handler) DeleteRecord(ctx context.Context, request customobjectsapi.DeleteRecordRequestObject) (customobjectsapi.DeleteRecordResponseObject, error) {
	id, _ := auth.IdentityFromContext(ctx)

	recordID, err := recordUUID(request.RecordId)
	if err == nil {
		err = h.svc.DeleteRecord(ctx, id, request.ObjectSlug, recordID)
	}
	if err != nil {
		status, problem := h.problem(ctx, deleteRecordOperation, err)
		return customobjectsapi.DeleteRecorddefaultApplicationProblemPlusJSONResponse{Body: problem, StatusCode: status}, nil
	}
	return customobjectsapi.DeleteRecord204Response{}, nil
}

func (h *Handler) problem(ctx context.Context, op operation, err error) (int, customobjectsapi.Problem) {
	problem := httpx.Report(ctx, h.logger, string(op), err)
	return problem.Status, problem
}

func recordUUID(raw string) (uuid.UUID, error) {
	recordID, err := httpx.PathUUID(raw)
	if err != nil {
		return uuid.Nil, service.ErrRecordNotFound
	}
	return recordID, nil
}

func toAPIObject(obj service.Object) customobjectsapi.CustomObject {
	out := customobjectsapi.CustomObject{
		Id:        obj.ID,
		Name:      obj.Name,
		Slug:      obj.Slug,
		Fields:    make([]customobjectsapi.CustomField, 0, len(obj.Fields)),
		CreatedAt: obj.CreatedAt,
		UpdatedAt: obj.UpdatedAt,
	}
	for _, f := range obj.Fields {
		out.Fields = append(out.Fields, toAPIField(f))
	}
	return out
}

func toAPIField(f service.Field) customobjectsapi.CustomField {
	options := f.Options
	if options == nil {
		options = []string{}
	}
	return customobjectsapi.CustomField{
		Id:         f.ID,
		ObjectId:   f.ObjectID,
		Name:       f.Name,
		Slug:       f.Slug,
		FieldType:  customobjectsapi.CustomFieldFieldType(f.Type),
		IsRequired: f.Required,
		Options:    options,
	}
}

func toAPIRecord(record service.Record) customobjectsapi.Record {
	return customobjectsapi.Record{
		Id:          record.ID,
		ObjectId:    record.ObjectID,
		Data:        record.Data,
		CreatedById: record.CreatedBy,
		UpdatedById: record.UpdatedBy,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

var _ customobjectsapi.StrictServerInterface = (*Handler)(nil)
