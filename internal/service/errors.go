package service

import (
	"errors"
	"fmt"
)

var (
	ErrCommunityNotFound  = errors.New("community not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrSlugTaken          = errors.New("slug already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")

	// ErrAccessCodeRequired 列表需要访问码；ErrAccessCodeInvalid 只是提示文案不同
	ErrAccessCodeRequired = errors.New("access code required")
	ErrAccessCodeInvalid  = fmt.Errorf("%w: code mismatch", ErrAccessCodeRequired)
)
