package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries the infrastructure the router wires around the server.
type RouterConfig struct {
	Logger   *zap.Logger
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	Doc      *openapi3.T
}

// NewRouter builds the echo instance: request ids, access logging, panic
// recovery and metrics on every route, identity on the order routes.
func NewRouter(s *Server, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(middleware.Recover())
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if cfg.Doc != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.Doc)
		})
	}

	orders := e.Group("/orders", Identity())
	orders.GET("", s.ListCustomerOrders)
	orders.POST("", s.CreateOrder)
	orders.GET("/:orderId", s.GetOrder)
	orders.PUT("/:orderId", s.UpdateOrder)
	orders.DELETE("/:orderId", s.DeleteOrder)
	orders.PATCH("/:orderId/confirm", s.ConfirmOrder)
	orders.PATCH("/:orderId/send", s.SendOrder)
	orders.PATCH("/:orderId/deliver", s.DeliverOrder)

	restaurants := e.Group("/restaurants/:restaurantId", Identity())
	restaurants.GET("/orders", s.ListRestaurantOrders)
	restaurants.GET("/analytics", s.RestaurantAnalytics)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
