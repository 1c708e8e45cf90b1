package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Failure classes raised while resolving prices and rates. They are recovered
// inside the resolver and converter; callers only ever see provenance tags.
var (
	ErrProviderUnavailable   = stderrors.New("provider unavailable")
	ErrMalformedResponse     = stderrors.New("malformed response")
	ErrOutOfRange            = stderrors.New("value out of range")
	ErrConversionUnavailable = stderrors.New("conversion unavailable")
	ErrInvalidInput          = stderrors.New("invalid input")
	// ErrUnsupported means the provider answered but cannot serve this
	// particular request, such as a currency it does not quote.
	ErrUnsupported = stderrors.New("unsupported by provider")
)

type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ErrValidation) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidationErrors collects every field failure of one request.
type ValidationErrors []*ErrValidation

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// ProviderError records which upstream failed and why.
type ProviderError struct {
	Provider string
	Kind     error
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func Unavailable(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrProviderUnavailable, Err: err}
}

func Malformed(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrMalformedResponse, Err: err}
}

func Unsupported(provider string, err error) error {
	return &ProviderError{Provider: provider, Kind: ErrUnsupported, Err: err}
}

// IsUnsupported reports whether err says nothing about provider health.
func IsUnsupported(err error) bool {
	return stderrors.Is(err, ErrUnsupported)
}

func OutOfRange(provider string, format string, args ...any) error {
	return &ProviderError{Provider: provider, Kind: ErrOutOfRange, Err: fmt.Errorf(format, args...)}
}

// Kind returns a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case stderrors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case stderrors.Is(err, ErrOutOfRange):
		return "out_of_range"
	case stderrors.Is(err, ErrUnsupported):
		return "unsupported"
	case stderrors.Is(err, ErrConversionUnavailable):
		return "conversion_unavailable"
	case stderrors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "unknown"
	}
}
