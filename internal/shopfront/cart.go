package shopfront

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tkb-shop/storefront/internal/webserver"
)

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPATCH("/cart/items", updateCartQuantity)
	webserver.ApiDELETE("/cart/items", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
}

type cartItemPayload struct {
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type cartQuantityPayload struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Delta     int    `json:"delta"`
	Color     string `json:"color"`
}

func cartState() map[string]interface{} {
	cart := appCtx.Cart()
	return map[string]interface{}{
		"lines": cart.Lines(),
		"total": cart.Total(),
		"count": cart.Count(),
	}
}

func getCart(c echo.Context) error {
	return ok(c, cartState())
}

func addCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	if payload.Quantity < 1 {
		payload.Quantity = 1
	}

	product, found := appCtx.Catalog().Product(payload.ProductID)
	if !found {
		p, err := appCtx.Backend().GetProduct(c.Request().Context(), payload.ProductID)
		if err != nil {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", err.Error())
		}
		product = *p
	}

	appCtx.Cart().Add(product, payload.Quantity, payload.Size, payload.Color)
	return ok(c, cartState())
}

func updateCartQuantity(c echo.Context) error {
	var payload cartQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity update", err.Error())
	}
	appCtx.Cart().UpdateQuantity(payload.ProductID, payload.Size, payload.Delta, payload.Color)
	return ok(c, cartState())
}

func removeCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	appCtx.Cart().Remove(payload.ProductID, payload.Size, payload.Color)
	return ok(c, cartState())
}

func clearCart(c echo.Context) error {
	appCtx.Cart().Clear()
	return ok(c, cartState())
}
