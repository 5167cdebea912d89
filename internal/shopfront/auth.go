package shopfront

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/webserver"
)

// registerAuthRoutes stores/clears the credentials issued by the
// backend at login. Login itself happens against the backend; this
// mirrors the web client's auth storage, including the remember-me
// scope choice.
func registerAuthRoutes() {
	webserver.ApiGET("/auth/session", getSession)
	webserver.ApiPOST("/auth/session", setSession)
	webserver.ApiDELETE("/auth/session", clearSession)
}

type sessionPayload struct {
	User     domain.User `json:"user"`
	Token    string      `json:"token"`
	Remember bool        `json:"remember"`
}

func getSession(c echo.Context) error {
	user, token := appCtx.Auth().Stored()
	return ok(c, map[string]interface{}{
		"user":       user,
		"hasToken":   token != "",
		"tokenValid": appCtx.Auth().TokenValid(time.Now()),
	})
}

func setSession(c echo.Context) error {
	var payload sessionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse session", err.Error())
	}
	if payload.User.ID == "" || payload.Token == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "User and token are required", nil)
	}
	if err := appCtx.Auth().Set(payload.User, payload.Token, payload.Remember); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store session", err.Error())
	}
	return ok(c, map[string]interface{}{"remember": payload.Remember})
}

func clearSession(c echo.Context) error {
	appCtx.Auth().Clear()
	return ok(c, nil)
}
