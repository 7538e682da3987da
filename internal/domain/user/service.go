package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"shelfkeeper/internal/domain/apperr"
	"shelfkeeper/internal/domain/schema"
	"shelfkeeper/internal/domain/store"
)

var (
	credentialFields   = schema.Fields("email", "password")
	registrationFields = schema.Fields("email", "password", "securityQuestions")
	verifyFields       = schema.Fields("securityQuestions")
	resetFields        = schema.Fields("newPassword", "securityQuestions")
)

type credentialsRequest struct {
	Email             string             `json:"email"`
	Password          string             `json:"password"`
	SecurityQuestions []SecurityQuestion `json:"securityQuestions"`
}

type verifyRequest struct {
	SecurityQuestions []SecurityQuestion `json:"securityQuestions"`
}

type resetRequest struct {
	NewPassword       string             `json:"newPassword"`
	SecurityQuestions []SecurityQuestion `json:"securityQuestions"`
}

type Servicer interface {
	Register(ctx context.Context, payload []byte) (Profile, error)
	Login(ctx context.Context, payload []byte) error
	VerifySecurityQuestions(ctx context.Context, email string, payload []byte) error
	ResetPassword(ctx context.Context, email string, payload []byte) (Profile, error)
}

type Service struct {
	repo      Repository
	hasher    Hasher
	validator Validator
	structure *schema.Structure
	decoy     string
	log       *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, hasher Hasher, validator Validator, log *slog.Logger) (*Service, error) {
	structure, err := schema.NewStructure(schema.RegisterSchema, schema.VerifyQuestionsSchema, schema.ResetPasswordSchema)
	if err != nil {
		return nil, fmt.Errorf("load recovery schemas: %w", err)
	}

	// Unknown emails are compared against this hash so a login miss costs
	// the same as a wrong password.
	decoy, err := hasher.Hash("decoy password")
	if err != nil {
		return nil, err
	}

	return &Service{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
		structure: structure,
		decoy:     decoy,
		log:       log.With("component", "user_service"),
		now:       time.Now,
	}, nil
}

func (s *Service) Register(ctx context.Context, payload []byte) (Profile, error) {
	req, err := schema.Decode[credentialsRequest](payload, credentialFields, registrationFields)
	if err != nil {
		return Profile{}, err
	}
	if err := s.structure.Check(schema.RegisterSchema, payload); err != nil {
		return Profile{}, err
	}
	if err := s.validator.ValidateRegister(req.Email, req.Password); err != nil {
		s.log.Debug("validation failed", "email", req.Email, "error", err)
		return Profile{}, apperr.Invalid(err)
	}

	_, err = s.repo.FindOne(ctx, store.Eq(EmailField, req.Email))
	switch {
	case err == nil:
		return Profile{}, apperr.Conflict(MsgUserExists)
	case !errors.Is(err, store.ErrNotFound):
		return Profile{}, s.internal("find user", req.Email, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return Profile{}, s.internal("hash password", req.Email, err)
	}

	account := Account{
		Email:             req.Email,
		PasswordHash:      hash,
		SecurityQuestions: req.SecurityQuestions,
		CreatedAt:         s.now().UTC(),
	}
	if _, err := s.repo.InsertOne(ctx, account); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Profile{}, apperr.Conflict(MsgUserExists)
		}
		return Profile{}, s.internal("insert user", req.Email, err)
	}

	s.log.Info("user registered", "email", req.Email)
	return account.Profile(), nil
}

func (s *Service) Login(ctx context.Context, payload []byte) error {
	req, err := schema.Decode[credentialsRequest](payload, credentialFields)
	if err != nil {
		return err
	}

	account, err := s.repo.FindOne(ctx, store.Eq(EmailField, req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.hasher.Compare(s.decoy, req.Password)
			s.log.Debug("login failed", "email", req.Email)
			return apperr.Unauthorized()
		}
		return s.internal("find user", req.Email, err)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		s.log.Debug("login failed", "email", req.Email)
		return apperr.Unauthorized()
	}

	s.log.Info("user authenticated", "email", req.Email)
	return nil
}

func (s *Service) VerifySecurityQuestions(ctx context.Context, email string, payload []byte) error {
	req, err := schema.Decode[verifyRequest](payload, verifyFields)
	if err != nil {
		return err
	}
	if err := s.structure.Check(schema.VerifyQuestionsSchema, payload); err != nil {
		return err
	}

	if err := s.checkAnswers(ctx, email, req.SecurityQuestions); err != nil {
		return err
	}

	s.log.Info("security questions verified", "email", email)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, email string, payload []byte) (Profile, error) {
	req, err := schema.Decode[resetRequest](payload, resetFields)
	if err != nil {
		return Profile{}, err
	}
	if err := s.structure.Check(schema.ResetPasswordSchema, payload); err != nil {
		return Profile{}, err
	}
	if err := s.validator.ValidatePassword(req.NewPassword); err != nil {
		return Profile{}, apperr.Invalid(err)
	}

	if err := s.checkAnswers(ctx, email, req.SecurityQuestions); err != nil {
		return Profile{}, err
	}

	// Hash outside the store lock; the answers are checked again inside it.
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return Profile{}, s.internal("hash password", email, err)
	}

	account, err := s.repo.UpdateOne(ctx, store.Eq(EmailField, email), func(cur Account) (Account, error) {
		if !AnswersMatch(cur.SecurityQuestions, req.SecurityQuestions) {
			return cur, ErrAnswersMismatch
		}
		cur.PasswordHash = hash
		return cur, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrAnswersMismatch) {
			return Profile{}, apperr.Unauthorized()
		}
		return Profile{}, s.internal("update password", email, err)
	}

	s.log.Info("password reset", "email", email)
	return account.Profile(), nil
}

func (s *Service) checkAnswers(ctx context.Context, email string, supplied []SecurityQuestion) error {
	account, err := s.repo.FindOne(ctx, store.Eq(EmailField, email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.Unauthorized()
		}
		return s.internal("find user", email, err)
	}

	if !AnswersMatch(account.SecurityQuestions, supplied) {
		s.log.Debug("security questions mismatch", "email", email)
		return apperr.Unauthorized()
	}
	return nil
}

// AnswersMatch compares supplied answers with the stored ones position by
// position. Every slot is compared so the time taken does not depend on
// which answer is wrong.
func AnswersMatch(stored, supplied []SecurityQuestion) bool {
	if len(stored) != QuestionCount || len(supplied) != QuestionCount {
		return false
	}
	ok := 1
	for i := range stored {
		ok &= subtle.ConstantTimeCompare([]byte(stored[i].Answer), []byte(supplied[i].Answer))
	}
	return ok == 1
}

func (s *Service) internal(op, email string, err error) error {
	s.log.Error("user store failure", "op", op, "email", email, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
