package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/internal/domain/apperr"
)

func TestStructure_Check(t *testing.T) {
	s, err := NewStructure(VerifyQuestionsSchema, ResetPasswordSchema, RegisterSchema)
	require.NoError(t, err)

	tests := []struct {
		name    string
		schema  string
		payload string
		wantErr bool
	}{
		{
			name:    "verify ok",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
		},
		{
			name:    "verify with questions",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"question":"q","answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
		},
		{
			name:    "verify two answers",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"answer":"a"},{"answer":"b"}]}`,
			wantErr: true,
		},
		{
			name:    "verify four answers",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"answer":"a"},{"answer":"b"},{"answer":"c"},{"answer":"d"}]}`,
			wantErr: true,
		},
		{
			name:    "verify numeric answer",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"answer":1},{"answer":"b"},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "verify missing answer",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"question":"q"},{"answer":"b"},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "verify extra member in answer",
			schema:  VerifyQuestionsSchema,
			payload: `{"securityQuestions":[{"answer":"a","hint":"x"},{"answer":"b"},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "reset ok",
			schema:  ResetPasswordSchema,
			payload: `{"newPassword":"pw","securityQuestions":[{"answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
		},
		{
			name:    "reset empty password",
			schema:  ResetPasswordSchema,
			payload: `{"newPassword":"","securityQuestions":[{"answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "reset extra top-level member",
			schema:  ResetPasswordSchema,
			payload: `{"newPassword":"pw","email":"x","securityQuestions":[{"answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "register without questions",
			schema:  RegisterSchema,
			payload: `{"email":"a@b.c","password":"pw"}`,
		},
		{
			name:    "register with questions",
			schema:  RegisterSchema,
			payload: `{"email":"a@b.c","password":"pw","securityQuestions":[{"question":"q","answer":"a"},{"answer":"b"},{"answer":"c"}]}`,
		},
		{
			name:    "register empty answer",
			schema:  RegisterSchema,
			payload: `{"email":"a@b.c","password":"pw","securityQuestions":[{"answer":"a"},{"answer":""},{"answer":"c"}]}`,
			wantErr: true,
		},
		{
			name:    "register numeric password",
			schema:  RegisterSchema,
			payload: `{"email":"a@b.c","password":42}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Check(tt.schema, []byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperr.ErrBadRequest)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStructure_UnknownSchema(t *testing.T) {
	s, err := NewStructure(RegisterSchema)
	require.NoError(t, err)

	err = s.Check(ResetPasswordSchema, []byte(`{}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrBadRequest)
}

func TestNewStructure_MissingFile(t *testing.T) {
	_, err := NewStructure("nope.json")
	assert.Error(t, err)
}
