package http

import (
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError("date")
	}
	if date, err := time.Parse(openapi_types.DateFormat, value); err == nil {
		return date, nil
	}
	date, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return date, nil
}

func newCreateOrderCommand(body servers.NewOrder) (commands.CreateOrderCommand, error) {
	date, err := parseDate(body.Date)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	description := ""
	if body.Description != nil {
		description = *body.Description
	}

	lines := make([]commands.ItemLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, commands.ItemLine{Name: item.Name, Quantity: item.Quantity})
	}

	return commands.NewCreateOrderCommand(date, description, lines)
}

func toOrderResponse(o *order.Order) servers.Order {
	items := make([]servers.Item, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.Item{
			Id:       item.ID().Int64(),
			Name:     item.Name(),
			Quantity: item.Quantity(),
		})
	}

	return servers.Order{
		Id:          o.ID().Int64(),
		Date:        openapi_types.Date{Time: o.Date()},
		Description: o.Description(),
		Items:       items,
	}
}

func toOrderListResponse(orders []*order.Order) []servers.Order {
	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}
