package shopfront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/tkb-shop/storefront/internal/webserver"
)

func registerFavoritesRoutes() {
	webserver.ApiGET("/favorites", listFavorites)
	webserver.ApiPOST("/favorites/toggle", toggleFavorite)
}

func listFavorites(c echo.Context) error {
	fav := appCtx.Favorites()
	return ok(c, map[string]interface{}{
		"items": fav.All(),
		"count": fav.Count(),
	})
}

func toggleFavorite(c echo.Context) error {
	var payload struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.Bind(&payload); err != nil {
		// form fallback for the legacy pages
		payload.ProductID = cast.ToInt64(c.FormValue("productId"))
	}
	if payload.ProductID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	product, found := appCtx.Catalog().Product(payload.ProductID)
	if !found {
		p, err := appCtx.Backend().GetProduct(c.Request().Context(), payload.ProductID)
		if err != nil {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", err.Error())
		}
		product = *p
	}

	favorited := appCtx.Favorites().Toggle(product)
	return ok(c, map[string]interface{}{
		"favorited": favorited,
		"count":     appCtx.Favorites().Count(),
	})
}
