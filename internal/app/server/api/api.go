// Package api wires every route of the service:
//
//	GET    /api/books                                  list books
//	GET    /api/books/{id}                             one book
//	POST   /api/books                                  add a book
//	PUT    /api/books/{id}                             replace a book
//	DELETE /api/books/{id}                             delete a book
//	(the same five routes under /api/recipes)
//	POST   /api/register                               register
//	POST   /api/login                                  check a password
//	POST   /api/users/{email}/verify-security-question check answers
//	POST   /api/users/{email}/reset-password           reset a password
//	GET    /api/v1/health                              service health
package api

import (
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/server/api/http/apierror"
	healthAPI "shelfkeeper/internal/app/server/api/http/health"
	"shelfkeeper/internal/app/server/api/http/middleware"
	"shelfkeeper/internal/app/server/api/http/middleware/logger"
	"shelfkeeper/internal/app/server/api/http/middleware/requestid"
	resourceAPI "shelfkeeper/internal/app/server/api/http/resource"
	userAPI "shelfkeeper/internal/app/server/api/http/user"
	"shelfkeeper/internal/config"
	"shelfkeeper/internal/domain/book"
	"shelfkeeper/internal/domain/recipe"
	"shelfkeeper/internal/domain/resource"
	"shelfkeeper/internal/domain/user"
	"shelfkeeper/internal/infrastructure/storage"
)

type Handlers struct {
	Health  *healthAPI.Handler
	User    *userAPI.Handler
	Books   *resourceAPI.Handler[book.Book]
	Recipes *resourceAPI.Handler[recipe.Recipe]
}

// New builds the router with every operation registered through huma.
func New(store *storage.Storage, cfg *config.Config, log *slog.Logger) (*chi.Mux, error) {
	apierror.Install()
	includeStack := cfg.Env != config.EnvProd

	mux := chi.NewMux()
	mux.Use(chimw.Recoverer)
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apierror.Write(w, http.StatusNotFound, includeStack)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apierror.Write(w, http.StatusMethodNotAllowed, includeStack)
	})

	humaConfig := huma.DefaultConfig("Shelfkeeper API", "1.0.0")
	API := humachi.New(mux, humaConfig)

	h, err := handlers(store, cfg, includeStack, log)
	if err != nil {
		return nil, err
	}
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Books.SetupRoutes(API)
	h.Recipes.SetupRoutes(API)

	return mux, nil
}

func handlers(store *storage.Storage, cfg *config.Config, includeStack bool, log *slog.Logger) (*Handlers, error) {
	loggerMW := logger.New(log)
	chain := middleware.NewChain(requestid.Middleware(), apierror.Middleware(includeStack), loggerMW.Middleware())

	healthHandler := healthAPI.NewHandler(store.Ping, log, chain.With())

	hasher := user.NewBcryptHasher(cfg.Auth.BcryptCost)
	userService, err := user.NewService(store.Users, hasher, user.NewCredentialValidator(), log)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	userHandler := userAPI.NewHandler(userService, log, chain.With())

	bookService := resource.NewService(book.Kind, store.Books, log)
	bookHandler := resourceAPI.NewHandler[book.Book]("books", bookService, log, chain.With())

	recipeService := resource.NewService(recipe.Kind, store.Recipes, log)
	recipeHandler := resourceAPI.NewHandler[recipe.Recipe]("recipes", recipeService, log, chain.With())

	return &Handlers{
		Health:  healthHandler,
		User:    userHandler,
		Books:   bookHandler,
		Recipes: recipeHandler,
	}, nil
}
