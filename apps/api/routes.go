package main

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	customobjectsapi "github.com/zenGate-Global/tenantgate/generated/go/custom-objects"
	customersapi "github.com/zenGate-Global/tenantgate/generated/go/customers"
	itemsapi "github.com/zenGate-Global/tenantgate/generated/go/items"
	rolesapi "github.com/zenGate-Global/tenantgate/generated/go/roles"
	usersapi "github.com/zenGate-Global/tenantgate/generated/go/users"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

// generatedHandlers holds the domains served through oapi-codegen strict servers.
type generatedHandlers struct {
	users         usersapi.StrictServerInterface
	roles         rolesapi.StrictServerInterface
	customObjects customobjectsapi.StrictServerInterface
	items         itemsapi.StrictServerInterface
	customers     customersapi.StrictServerInterface
}

// mountGenerated registers the generated routes on r. Decode failures, unexpected handler errors and
// malformed query parameters all render as problem documents.
func mountGenerated(r chi.Router, logger *zap.Logger, h generatedHandlers) {
	requestErr := httpx.RequestErrorHandler(logger)
	responseErr := httpx.ResponseErrorHandler(logger)
	paramErr := httpx.ParamErrorHandler(logger)

	usersapi.HandlerWithOptions(
		usersapi.NewStrictHandlerWithOptions(h.users, nil, usersapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErr,
			ResponseErrorHandlerFunc: responseErr,
		}),
		usersapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: paramErr},
	)
	rolesapi.HandlerWithOptions(
		rolesapi.NewStrictHandlerWithOptions(h.roles, nil, rolesapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErr,
			ResponseErrorHandlerFunc: responseErr,
		}),
		rolesapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: paramErr},
	)
	customobjectsapi.HandlerWithOptions(
		customobjectsapi.NewStrictHandlerWithOptions(h.customObjects, nil, customobjectsapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErr,
			ResponseErrorHandlerFunc: responseErr,
		}),
		customobjectsapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: paramErr},
	)
	itemsapi.HandlerWithOptions(
		itemsapi.NewStrictHandlerWithOptions(h.items, nil, itemsapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErr,
			ResponseErrorHandlerFunc: responseErr,
		}),
		itemsapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: paramErr},
	)
	customersapi.HandlerWithOptions(
		customersapi.NewStrictHandlerWithOptions(h.customers, nil, customersapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErr,
			ResponseErrorHandlerFunc: responseErr,
		}),
		customersapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: paramErr},
	)
}
