package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bajakarsa/bilahstore/internal/app"
)

// AppContextKey is the echo context key under which the application
// instance is injected for handlers.
const AppContextKey = "bilahstore_app"

var server *WebServer

// WebServer wraps the echo instance with a public /api group and a
// jwt-guarded /api/admin group.
type WebServer struct {
	root  *echo.Echo
	pub   *echo.Group
	admin *echo.Group
	app   *app.Application
}

// Init builds the global web server instance. Must run before any route
// registration.
func Init(application *app.Application) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, application)
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	})

	secret := []byte(application.Config().Web.Secret)
	admin := e.Group("/api/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: secret,
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"code":    "UNAUTHORIZED",
				"message": "Admin authorization required",
			})
		},
	}))

	server = &WebServer{
		root:  e,
		pub:   e.Group("/api"),
		admin: admin,
		app:   application,
	}

	// Login lives outside the guarded group.
	e.POST("/api/admin/login", server.login)
}

// Listen starts serving on the configured address, blocking.
func Listen() error {
	cfg := server.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return server.root.Start(addr)
}

// Shutdown stops the server gracefully.
func Shutdown() error {
	return server.root.Close()
}

// Echo exposes the underlying echo instance, used by tests.
func Echo() *echo.Echo {
	return server.root
}

// Public route registration.

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }

// Admin (jwt-guarded) route registration.

func ApiGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AdminClaims is the token payload for admin sessions.
type AdminClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Level    string `json:"level"`
	jwt.RegisteredClaims
}

func (s *WebServer) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false, "code": "INVALID_REQUEST", "message": "Unable to parse login request",
		})
	}
	cfg := s.app.Config().Web
	if payload.Username != cfg.AdminUsername || payload.Password != cfg.AdminPassword {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"success": false, "code": "BAD_CREDENTIALS", "message": "Invalid username or password",
		})
	}

	token, err := IssueToken(cfg.Secret, payload.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false, "code": "TOKEN_ERROR", "message": err.Error(),
		})
	}
	zap.L().Info("admin login", zap.String("username", payload.Username))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// IssueToken signs a 12h admin token. Split out so tests can mint tokens
// without going through the login endpoint.
func IssueToken(secret, username string) (string, error) {
	claims := AdminClaims{
		Username: username,
		Email:    strings.ToLower(username) + "@bilahstore.local",
		Level:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
