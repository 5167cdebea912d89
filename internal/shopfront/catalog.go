package shopfront

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/tkb-shop/storefront/internal/catalog"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/webserver"
)

// registerCatalogRoutes exposes the taxonomy-resolved catalog. The
// /c/:group[/:sub] routes resolve URL slugs locally, no backend
// round-trip is needed for the resolution itself.
func registerCatalogRoutes() {
	webserver.ApiGET("/products", listCatalog)
	webserver.ApiGET("/products/:id", getCatalogProduct)
	webserver.ApiGET("/groups", listGroups)
	webserver.ApiGET("/c/:group", listGroupProducts)
	webserver.ApiGET("/c/:group/:sub", listSubcategoryProducts)
	webserver.ApiPOST("/catalog/refresh", refreshCatalog)
}

type productView struct {
	domain.Product
	Group           string `json:"group"`
	DisplayCategory string `json:"displayCategory"`
	Promo           bool   `json:"promo"`
	DiscountPercent int    `json:"discountPercent,omitempty"`
	New             bool   `json:"new"`
}

func toView(p domain.Product) productView {
	days := appCtx.Config().Catalog.NewDays
	return productView{
		Product:         p,
		Group:           catalog.GroupLabel(p),
		DisplayCategory: catalog.DisplayCategory(p),
		Promo:           catalog.IsPromo(p),
		DiscountPercent: catalog.DiscountPercent(p),
		New:             catalog.IsNew(p, days, time.Now()),
	}
}

func toViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}

func listCatalog(c echo.Context) error {
	products := appCtx.Catalog().Products()

	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}

	total := int64(len(products))
	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return paged(c, toViews(products[start:end]), total, page, pageSize)
}

func getCatalogProduct(c echo.Context) error {
	id := cast.ToInt64(c.Param("id"))
	if id <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	if p, found := appCtx.Catalog().Product(id); found {
		return ok(c, toView(p))
	}

	// Cache miss: ask the backend directly.
	p, err := appCtx.Backend().GetProduct(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", err.Error())
	}
	return ok(c, toView(*p))
}

func listGroups(c echo.Context) error {
	type groupView struct {
		Label         string   `json:"label"`
		Slug          string   `json:"slug"`
		Subcategories []string `json:"subcategories"`
		Count         int      `json:"count"`
	}
	var views []groupView
	labels := appCtx.Catalog().GroupLabels()
	for _, label := range labels {
		products := appCtx.Catalog().ByGroupLabel(label)
		views = append(views, groupView{
			Label:         label,
			Slug:          catalog.Slugify(label),
			Subcategories: catalog.Subcategories(label),
			Count:         len(products),
		})
	}
	return ok(c, views)
}

func listGroupProducts(c echo.Context) error {
	label, products := appCtx.Catalog().ByGroupSlug(c.Param("group"))
	return ok(c, map[string]interface{}{
		"label":    label,
		"products": toViews(products),
	})
}

func listSubcategoryProducts(c echo.Context) error {
	label, subLabel, products := appCtx.Catalog().BySubcategorySlug(c.Param("group"), c.Param("sub"))
	return ok(c, map[string]interface{}{
		"label":       label,
		"subcategory": subLabel,
		"products":    toViews(products),
	})
}

func refreshCatalog(c echo.Context) error {
	if err := appCtx.Catalog().Refresh(c.Request().Context()); err != nil {
		return fail(c, http.StatusBadGateway, "BACKEND_ERROR", "Impossible de charger le catalogue", err.Error())
	}
	return ok(c, map[string]interface{}{"fetchedAt": appCtx.Catalog().FetchedAt()})
}
