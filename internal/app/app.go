package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kegliz/qasmc/internal/config"
	"github.com/kegliz/qasmc/internal/logger"
	"github.com/kegliz/qasmc/internal/server"
	"github.com/kegliz/qasmc/internal/server/router"
)

type (
	ServerOptions struct {
		C       config.Config
		Version string
	}

	appServer struct {
		logger  *logger.Logger
		router  *router.Router
		cfg     config.Config
		version string
	}

	appServerOptions struct {
		logger  *logger.Logger
		router  *router.Router
		cfg     config.Config
		version string
	}
)

// newAppServer creates a new appServer.
func newAppServer(options appServerOptions) *appServer {
	a := &appServer{
		logger:  options.logger,
		router:  options.router,
		cfg:     options.cfg,
		version: options.version,
	}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Debug().Str("version", a.version).Msg("debug qasmc server")
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Msg("starting qasmc compile service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

// NewServer wires a logger, a router, and the compile-endpoint handlers
// into a server.Server ready to Listen.
func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug: options.C.Debug,
	})
	app := newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		cfg:     options.C,
		version: options.Version,
	})
	return app, nil
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*logger.Logger, error) {
	if loggerInstance, ok := c.Get("logger"); ok {
		if l, ok := loggerInstance.(*logger.Logger); ok {
			return l, nil
		}
	}
	err := errors.New("logger not found in context")
	a.logger.Error().Err(err).Send()
	c.String(http.StatusInternalServerError, internalServerErrorMsg)
	return nil, err
}
