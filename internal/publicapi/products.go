package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/bajakarsa/bilahstore/internal/app"
	"github.com/bajakarsa/bilahstore/internal/catalog"
	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

// InitRouter registers the public storefront routes.
func InitRouter() {
	webserver.PubGET("/products", queryProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.PubGET("/categories", listCategories)
}

func getApp(c echo.Context) *app.Application {
	return c.Get(webserver.AppContextKey).(*app.Application)
}

func parseFilter(c echo.Context) catalog.FilterSpec {
	return catalog.FilterSpec{
		Type:      c.QueryParam("type"),
		Category:  c.QueryParam("category"),
		Search:    c.QueryParam("search"),
		Steel:     c.QueryParam("steel"),
		Handle:    c.QueryParam("handle"),
		Maker:     c.QueryParam("maker"),
		PriceMin:  cast.ToFloat64(c.QueryParam("priceMin")),
		PriceMax:  cast.ToFloat64(c.QueryParam("priceMax")),
		BladeMin:  cast.ToFloat64(c.QueryParam("bladeMin")),
		BladeMax:  cast.ToFloat64(c.QueryParam("bladeMax")),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}
}

// queryProducts serves the storefront listing: filtered results plus the
// facet sets the filter UI is built from.
func queryProducts(c echo.Context) error {
	products, err := getApp(c).Store().Products()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": err.Error(),
		})
	}
	result := catalog.Query(products, parseFilter(c))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"results": result.Results,
		"facets":  result.Facets,
	})
}

func getProduct(c echo.Context) error {
	id := c.Param("id")
	products, err := getApp(c).Store().Products()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false, "message": err.Error(),
		})
	}
	for _, p := range products {
		if p.ID == id {
			return c.JSON(http.StatusOK, map[string]interface{}{
				"success": true, "data": p,
			})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"success": false, "message": "Product not found",
	})
}

func listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"knife": domain.KnifeCategories,
			"tool":  domain.ToolCategories,
			"all":   domain.AllCategories(),
		},
	})
}
