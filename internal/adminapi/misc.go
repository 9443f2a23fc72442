package adminapi

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/bajakarsa/bilahstore/internal/app"
	"github.com/bajakarsa/bilahstore/internal/domain"
	"github.com/bajakarsa/bilahstore/internal/store"
	"github.com/bajakarsa/bilahstore/internal/webserver"
)

// InitRouter registers all admin API routes. Call after webserver.Init.
func InitRouter() {
	registerProductRoutes()
	registerImportRoutes()
}

// GetApp extracts the application instance injected by the web server.
func GetApp(c echo.Context) *app.Application {
	return c.Get(webserver.AppContextKey).(*app.Application)
}

// GetStore returns the product store for the current request.
func GetStore(c echo.Context) *store.ProductStore {
	return GetApp(c).Store()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, map[string]interface{}{
		"success":  true,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (int, int) {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// currentAttribution derives the createdBy/updatedBy record from the
// request's jwt claims. Nil when no usable claims are present (tests
// calling handlers directly).
func currentAttribution(c echo.Context) *domain.Attribution {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	name := cast.ToString(claims["username"])
	email := cast.ToString(claims["email"])
	if name == "" && email == "" {
		return nil
	}
	if email == "" {
		email = strings.ToLower(name) + "@bilahstore.local"
	}
	return &domain.Attribution{Email: email, Name: name}
}
