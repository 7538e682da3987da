package user

import (
	"context"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/server/api/http/apierror"
	"shelfkeeper/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.verifyOp(), h.verify)
	huma.Register(api, h.resetOp(), h.reset)
}

func (h *Handler) register(ctx context.Context, input *rawInput) (*profileOutput, error) {
	profile, err := h.service.Register(ctx, input.RawBody)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &profileOutput{Body: ProfileResponse{Email: profile.Email}}, nil
}

func (h *Handler) login(ctx context.Context, input *rawInput) (*messageOutput, error) {
	if err := h.service.Login(ctx, input.RawBody); err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &messageOutput{Body: MessageResponse{Message: user.MsgAuthenticated}}, nil
}

func (h *Handler) verify(ctx context.Context, input *accountInput) (*messageOutput, error) {
	if err := h.service.VerifySecurityQuestions(ctx, pathEmail(input.Email), input.RawBody); err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &messageOutput{Body: MessageResponse{Message: user.MsgQuestionsAnswered}}, nil
}

func (h *Handler) reset(ctx context.Context, input *accountInput) (*profileOutput, error) {
	profile, err := h.service.ResetPassword(ctx, pathEmail(input.Email), input.RawBody)
	if err != nil {
		return nil, apierror.From(ctx, err)
	}
	return &profileOutput{Body: ProfileResponse{Email: profile.Email}}, nil
}

// pathEmail undoes percent-encoding the router may have left in the segment.
func pathEmail(raw string) string {
	if email, err := url.PathUnescape(raw); err == nil {
		return email
	}
	return raw
}
