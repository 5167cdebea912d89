package shopfront

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tkb-shop/storefront/internal/checkout"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/webserver"
)

// registerCheckoutRoutes wires the order placement saga. The routes
// live on the jwt-protected group: checkout requires a signed-in user.
func registerCheckoutRoutes() {
	webserver.SecPOST("/checkout", beginCheckout)
	webserver.SecPOST("/checkout/:id/resume", resumeCheckout)
	webserver.SecGET("/checkout/:id", checkoutStatus)
	webserver.SecGET("/checkout", listOpenCheckouts)
	webserver.ApiGET("/checkout/quote", quoteCart)
}

type checkoutPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

func beginCheckout(c echo.Context) error {
	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout form", err.Error())
	}
	payload.Address = strings.TrimSpace(payload.Address)
	payload.City = strings.TrimSpace(payload.City)
	payload.Phone = strings.TrimSpace(payload.Phone)
	if payload.Address == "" || payload.City == "" || payload.Phone == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Veuillez remplir l'adresse et le téléphone", nil)
	}

	user := appCtx.Auth().StoredUser()
	if user == nil {
		return fail(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Connexion requise", nil)
	}

	j, err := appCtx.Checkout().Begin(c.Request().Context(),
		domain.Buyer{UserID: user.ID},
		domain.ShippingInfo{Address: payload.Address, City: payload.City, Phone: payload.Phone})
	if errors.Is(err, checkout.ErrEmptyCart) {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Le panier est vide", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Erreur d'enregistrement.", err.Error())
	}
	return checkoutResult(c, j)
}

func resumeCheckout(c echo.Context) error {
	j, err := appCtx.Checkout().Resume(c.Request().Context(), c.Param("id"))
	if errors.Is(err, checkout.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Checkout not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Erreur d'enregistrement.", err.Error())
	}
	return checkoutResult(c, j)
}

func checkoutStatus(c echo.Context) error {
	j, err := appCtx.Checkout().Journal(c.Param("id"))
	if errors.Is(err, checkout.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Checkout not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Checkout state unreadable", err.Error())
	}
	return ok(c, j)
}

func listOpenCheckouts(c echo.Context) error {
	return ok(c, appCtx.Checkout().Open())
}

// quoteCart re-prices the cart against the backend before payment.
func quoteCart(c echo.Context) error {
	lines := appCtx.Cart().Lines()
	items := make([]domain.QuoteItem, 0, len(lines))
	for _, l := range lines {
		size := l.SelectedSize
		if size == "" {
			size = "Unique"
		}
		items = append(items, domain.QuoteItem{
			Product:  strconv.FormatInt(l.ProductID, 10),
			Quantity: l.Quantity,
			Size:     size,
		})
	}
	total, err := appCtx.Backend().QuoteOrder(c.Request().Context(), items)
	if err != nil {
		return fail(c, http.StatusBadGateway, "BACKEND_ERROR", "Impossible de valider le panier", err.Error())
	}
	return ok(c, map[string]interface{}{
		"totalAmount": total,
		"localTotal":  appCtx.Cart().Total(),
		"shippingFee": appCtx.Checkout().ShippingFee(total),
	})
}

func checkoutResult(c echo.Context, j *checkout.Journal) error {
	if j.State == checkout.StateComplete {
		return ok(c, j)
	}
	// Some lines were not placed; the journal carries per-line detail
	// and the cart stays intact for a resume.
	return c.JSON(http.StatusBadGateway, map[string]interface{}{
		"code":    "CHECKOUT_INCOMPLETE",
		"message": "Erreur d'enregistrement.",
		"detail":  j,
	})
}
