package user

import "errors"

const (
	MsgUserExists        = "User already exists"
	MsgAuthenticated     = "Authentication successful"
	MsgQuestionsAnswered = "Security questions successfully answered"
)

var ErrAnswersMismatch = errors.New("security answers do not match")
