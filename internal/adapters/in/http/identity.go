package http

import (
	"net/http"
	"strconv"

	"deliverus/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Headers set by the gateway once it has authenticated the user.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

const actorKey = "actor"

// Identity reads the authenticated user from the gateway headers. Requests
// without a well formed identity are rejected with 401.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := strconv.ParseInt(c.Request().Header.Get(HeaderUserID), 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed "+HeaderUserID)
			}

			role, err := kernel.ParseRole(c.Request().Header.Get(HeaderUserRole))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed "+HeaderUserRole)
			}

			actor, err := kernel.NewActor(userID, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) kernel.Actor {
	actor, _ := c.Get(actorKey).(kernel.Actor)
	return actor
}
