package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Every user operation reads the raw body; the service validates it, so
// huma's own body validation is skipped.

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:      "user-register",
		Method:           http.MethodPost,
		Path:             "/api/register",
		Summary:          "Register a user",
		Description:      "Body is {email, password}, optionally with securityQuestions: three {question?, answer} objects.",
		Tags:             []string{"users"},
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID:      "user-login",
		Method:           http.MethodPost,
		Path:             "/api/login",
		Summary:          "Check a user's credentials",
		Tags:             []string{"users"},
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID:      "user-verify-security-questions",
		Method:           http.MethodPost,
		Path:             "/api/users/{email}/verify-security-question",
		Summary:          "Verify the answers to a user's security questions",
		Description:      "Answers are compared in the order the questions were stored.",
		Tags:             []string{"users"},
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}

func (h *Handler) resetOp() huma.Operation {
	return huma.Operation{
		OperationID:      "user-reset-password",
		Method:           http.MethodPost,
		Path:             "/api/users/{email}/reset-password",
		Summary:          "Reset a password by answering the security questions",
		Tags:             []string{"users"},
		SkipValidateBody: true,
		Middlewares:      h.middleware,
	}
}
