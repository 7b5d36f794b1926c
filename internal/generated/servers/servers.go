// Package servers holds the HTTP types and routing of the orders API as
// described by api/openapi.yaml.
package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewItem defines model for NewItem.
type NewItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewOrder defines model for NewOrder. Date is kept as text because both
// calendar dates and RFC 3339 timestamps are accepted.
type NewOrder struct {
	Date        string    `json:"date"`
	Description *string   `json:"description,omitempty"`
	Items       []NewItem `json:"items,omitempty"`
}

// Order defines model for Order.
type Order struct {
	Date        openapi_types.Date `json:"date"`
	Description string             `json:"description"`
	Id          int64              `json:"id"`
	Items       []Item             `json:"items"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List every order with its items
	// (GET /v1/order)
	GetOrders(ctx echo.Context) error
	// Create an order and its items in one transaction
	// (POST /v1/order)
	CreateOrder(ctx echo.Context) error
	// Get one order with its items
	// (GET /v1/order/{id})
	GetOrder(ctx echo.Context, id int64) error
	// Report whether the database is reachable
	// (GET /health)
	GetHealth(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.GetOrder(ctx, id)
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, prefixing every path
// with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.GET(baseURL+"/v1/order", wrapper.GetOrders)
	router.POST(baseURL+"/v1/order", wrapper.CreateOrder)
	router.GET(baseURL+"/v1/order/:id", wrapper.GetOrder)
}
