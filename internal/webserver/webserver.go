package webserver

import (
	"fmt"
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tkb-shop/storefront/internal/app"
	"go.uber.org/zap"
)

var server *WebServer

// WebServer hosts the storefront HTTP surface: an open group for
// catalog/cart/favorites and a jwt-protected group for checkout.
type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	open   *echo.Group
	sec    *echo.Group
}

// Init builds the echo instance and route groups. Handlers register
// afterwards through the Api*/Sec* helpers.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger)

	s := &WebServer{
		appCtx: appCtx,
		root:   e,
		open:   e.Group("/shop"),
	}

	sec := e.Group("/shop")
	if secret := appCtx.Config().Web.JwtSecret; secret != "" {
		sec.Use(echojwt.WithConfig(echojwt.Config{SigningKey: []byte(secret)}))
	}
	s.sec = sec

	server = s
	return s
}

// Listen starts the HTTP listener and blocks.
func Listen() error {
	cfg := server.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("storefront web listening on %s", addr)
	return server.root.Start(addr)
}

// Echo exposes the underlying instance for tests.
func Echo() *echo.Echo { return server.root }

func App() app.AppContext { return server.appCtx }

func ApiGET(path string, h echo.HandlerFunc)    { server.open.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.open.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.open.PUT(path, h) }
func ApiPATCH(path string, h echo.HandlerFunc)  { server.open.PATCH(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.open.DELETE(path, h) }

func SecGET(path string, h echo.HandlerFunc)  { server.sec.GET(path, h) }
func SecPOST(path string, h echo.HandlerFunc) { server.sec.POST(path, h) }

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		zap.L().Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)))
		return err
	}
}
