package shopfront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tkb-shop/storefront/internal/app"
)

var appCtx app.AppContext

// Register wires every storefront route onto the webserver. Init the
// webserver first.
func Register(a app.AppContext) {
	appCtx = a
	registerCatalogRoutes()
	registerCartRoutes()
	registerFavoritesRoutes()
	registerCheckoutRoutes()
	registerAuthRoutes()
	registerNotificationRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":     0,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
