package model

import "errors"

var (
	ErrMalformedToken = errors.New("malformed token")

	ErrNoActiveInterview = errors.New("no active interview")
	ErrNoCurrentQuestion = errors.New("no current question")
)
