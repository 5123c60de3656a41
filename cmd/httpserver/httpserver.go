// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-banco/banco/internal/accountdelivery"
	"github.com/go-banco/banco/internal/accountrepo"
	"github.com/go-banco/banco/internal/accountservice"
	"github.com/go-banco/banco/internal/bankrepo"
	"github.com/go-banco/banco/internal/middleware"
	"github.com/go-banco/banco/internal/transferdelivery"
	"github.com/go-banco/banco/internal/transferservice"
	"github.com/go-banco/banco/pkg/configpkg"
	"github.com/go-banco/banco/pkg/decimalpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Start runs the server on the configured address.
func (s *Server) Start() error {
	return s.Engine.Run(s.Config.ServerAddress)
}

// New creates Server backed by Postgres repositories.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	bankRepo := bankrepo.NewRepoPGS(conn)

	engine, err := newEngine(accountRepo, bankRepo, logger)
	if err != nil {
		return nil, err
	}

	return &Server{DB: conn, Engine: engine, Config: config}, nil
}

// NewInMemory creates Server backed by the given in-memory repositories.
// The caller seeds them with whatever fixtures it wants served.
func NewInMemory(accounts *accountrepo.RepoMem, banks *bankrepo.RepoMem, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	engine, err := newEngine(accounts, banks, logger)
	if err != nil {
		return nil, err
	}

	return &Server{Engine: engine, Config: config}, nil
}

func newEngine(accountRepo accountservice.Repo, bankRepo transferservice.BankRepo, logger zerolog.Logger) (*gin.Engine, error) {
	accountService := accountservice.New(accountRepo)
	transferService := transferservice.New(accountRepo, bankRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.DELETE("/accounts/:id", accountHandler.Delete)
	engine.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("decimal", decimalpkg.ValidDecimal); err != nil {
			return nil, errors.New("cannot register decimal validator")
		}
	}

	return engine, nil
}
