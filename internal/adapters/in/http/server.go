package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/core/application/usecases/queries"
	"deliverus/internal/core/domain/model/kernel"
	"deliverus/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
)

// Server implements the order endpoints.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

func pathID(c echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path parameter "+name)
	}
	return id, nil
}

// bindBody decodes the JSON body into dst. A value of the wrong JSON type is
// reported as a violation on its field; any other decoding failure is a 400.
func bindBody(c echo.Context, dst any) error {
	err := (&echo.DefaultBinder{}).BindBody(c, dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.NewFieldValidationError(field, fmt.Sprintf("%s must be %s", field, jsonKind(typeErr.Type)))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Pointer:
		return jsonKind(t.Elem())
	default:
		return "a " + t.String()
	}
}

// ListCustomerOrders handles GET /orders.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	query, err := queries.NewListCustomerOrdersQuery(actorFrom(c))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body NewOrder
	if err := bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), body.RestaurantID, body.Address, inputs(body.Products))
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fromResult(result))
}

// GetOrder handles GET /orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrder(view))
}

// UpdateOrder handles PUT /orders/{orderId}.
func (s *Server) UpdateOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	var body OrderUpdate
	if err = bindBody(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(actorFrom(c), orderID, body.RestaurantID, body.Address, inputs(body.Products))
	if err != nil {
		return err
	}

	result, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromResult(result))
}

// DeleteOrder handles DELETE /orders/{orderId}.
func (s *Server) DeleteOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(actorFrom(c), orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles PATCH /orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	return s.transition(c, commands.NewConfirmOrderCommand)
}

// SendOrder handles PATCH /orders/{orderId}/send.
func (s *Server) SendOrder(c echo.Context) error {
	return s.transition(c, commands.NewSendOrderCommand)
}

// DeliverOrder handles PATCH /orders/{orderId}/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	return s.transition(c, commands.NewDeliverOrderCommand)
}

type transitionCommandFactory func(actor kernel.Actor, orderID int64) (commands.TransitionOrderCommand, error)

func (s *Server) transition(c echo.Context, build transitionCommandFactory) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}

	cmd, err := build(actorFrom(c), orderID)
	if err != nil {
		return err
	}

	result, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromResult(result))
}

// ListRestaurantOrders handles GET /restaurants/{restaurantId}/orders.
func (s *Server) ListRestaurantOrders(c echo.Context) error {
	restaurantID, err := pathID(c, "restaurantId")
	if err != nil {
		return err
	}

	var (
		status   *string
		from, to *types.Date
	)
	params := c.QueryParams()
	if err = runtime.BindQueryParameter("form", true, false, "status", params, &status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameter status")
	}
	if err = runtime.BindQueryParameter("form", true, false, "from", params, &from); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be a date formatted as YYYY-MM-DD")
	}
	if err = runtime.BindQueryParameter("form", true, false, "to", params, &to); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be a date formatted as YYYY-MM-DD")
	}

	query, err := queries.NewListRestaurantOrdersQuery(actorFrom(c), restaurantID, deref(status), dateTime(from), dateTime(to))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListRestaurantOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrders(views))
}

// RestaurantAnalytics handles GET /restaurants/{restaurantId}/analytics.
func (s *Server) RestaurantAnalytics(c echo.Context) error {
	restaurantID, err := pathID(c, "restaurantId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetRestaurantAnalyticsQuery(actorFrom(c), restaurantID)
	if err != nil {
		return err
	}

	snapshot, err := s.handlers.RestaurantAnalytics.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAnalytics(snapshot))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateTime(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
