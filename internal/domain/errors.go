package domain

import "errors"

// Error kinds shared by the dispatcher, the scheduler and the stores.
// Call sites wrap them with fmt.Errorf("...: %w", ...) and callers match with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnclassifiable      = errors.New("language unclassifiable")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrBackend             = errors.New("backend error")
	ErrDelivery            = errors.New("delivery error")
)
