package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both user_id and role
// must be non-empty, their presence proves the middleware ran and the token
// carries a usable identity.
func ctxActor(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}
