// Package client is the command-line client's view of the REST API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/client/config"
)

// Collections the server exposes under /api/<name>.
const (
	Books   = "books"
	Recipes = "recipes"
)

type App struct {
	config *config.Config
	log    *slog.Logger
	http   *httpClient
}

func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
		http:   newHTTPClient(cfg, log),
	}
}

type appKey struct{}

// WithApp stores app in ctx for the cobra subcommands.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext returns the App stored by WithApp.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// CheckConnection asks the health endpoint whether the server is up.
func (a *App) CheckConnection(ctx context.Context) error {
	return a.http.do(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// List returns every record of collection as raw JSON objects.
func (a *App) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := a.http.do(ctx, http.MethodGet, "/api/"+collection, nil, &out)
	return out, err
}

// Get returns one record. id is sent as typed so the server does the numeric check.
func (a *App) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := a.http.do(ctx, http.MethodGet, "/api/"+collection+"/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (a *App) Create(ctx context.Context, collection string, record json.RawMessage) (int, error) {
	var out struct {
		ID int `json:"id"`
	}
	if err := a.http.do(ctx, http.MethodPost, "/api/"+collection, record, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (a *App) Update(ctx context.Context, collection, id string, record json.RawMessage) error {
	return a.http.do(ctx, http.MethodPut, "/api/"+collection+"/"+url.PathEscape(id), record, nil)
}

func (a *App) Delete(ctx context.Context, collection, id string) error {
	return a.http.do(ctx, http.MethodDelete, "/api/"+collection+"/"+url.PathEscape(id), nil, nil)
}

type Answer struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
}

type credentials struct {
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	SecurityQuestions []Answer `json:"securityQuestions,omitempty"`
}

type profile struct {
	Email string `json:"email"`
}

type message struct {
	Message string `json:"message"`
}

// Register creates an account. questions may be empty or exactly three.
func (a *App) Register(ctx context.Context, email, password string, questions []Answer) (string, error) {
	var out profile
	err := a.http.do(ctx, http.MethodPost, "/api/register", credentials{
		Email:             email,
		Password:          password,
		SecurityQuestions: questions,
	}, &out)
	return out.Email, err
}

func (a *App) Login(ctx context.Context, email, password string) (string, error) {
	var out message
	err := a.http.do(ctx, http.MethodPost, "/api/login", credentials{Email: email, Password: password}, &out)
	return out.Message, err
}

func (a *App) VerifySecurityQuestions(ctx context.Context, email string, answers []string) (string, error) {
	body := struct {
		SecurityQuestions []Answer `json:"securityQuestions"`
	}{SecurityQuestions: toAnswers(answers)}

	var out message
	err := a.http.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(email)+"/verify-security-question", body, &out)
	return out.Message, err
}

func (a *App) ResetPassword(ctx context.Context, email, newPassword string, answers []string) (string, error) {
	body := struct {
		NewPassword       string   `json:"newPassword"`
		SecurityQuestions []Answer `json:"securityQuestions"`
	}{NewPassword: newPassword, SecurityQuestions: toAnswers(answers)}

	var out profile
	err := a.http.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(email)+"/reset-password", body, &out)
	return out.Email, err
}

func toAnswers(answers []string) []Answer {
	out := make([]Answer, len(answers))
	for i, a := range answers {
		out[i] = Answer{Answer: a}
	}
	return out
}
