package services

import "errors"

var (
	ErrUnknownKind          = errors.New("target kind unknown")
	ErrTargetNotFound       = errors.New("target not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrContactNotFound      = errors.New("contact request not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidIP            = errors.New("invalid ip address")
)

// IsNotFound reports whether err should surface as 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrTargetNotFound) ||
		errors.Is(err, ErrNotificationNotFound) ||
		errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
