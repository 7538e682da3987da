package user

import "time"

// QuestionCount is how many security questions an account must hold for
// verification and reset to be possible.
const QuestionCount = 3

type SecurityQuestion struct {
	Question string `json:"question,omitempty" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Account is the stored user. PasswordHash is a bcrypt hash, never the plaintext.
type Account struct {
	Email             string             `json:"email"`
	PasswordHash      string             `json:"passwordHash"`
	SecurityQuestions []SecurityQuestion `json:"securityQuestions,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func (a Account) DocumentKey() string { return a.Email }

func (a Account) DocumentFields() map[string]any {
	return map[string]any{"email": a.Email}
}

// Profile is the part of an account that may leave the service.
type Profile struct {
	Email string `json:"email"`
}

func (a Account) Profile() Profile {
	return Profile{Email: a.Email}
}
