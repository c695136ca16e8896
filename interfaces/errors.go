package interfaces

import (
	"errors"
	"fmt"
)

// Sentinel errors for runtime primitive operations. These are deliberately
// uninformative: a wrapped verifier or AEAD must not reveal which candidate
// key failed versus simply not matching.
var (
	// ErrVerificationFailed is returned when no enabled key in the set
	// validates a signature or MAC.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrDecryptionFailed is returned when no enabled key in the set
	// decrypts a ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Kind categorizes registry and config errors.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadyExists
	KindInvalidArgument
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvalidArgument:
		return "invalid argument"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error wraps registry errors with the operation that failed and a Kind for
// classification.
type Error struct {
	Op   string // operation that failed, e.g. "registry.AddCatalogue"
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error.
func NewError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf creates a new Error with a formatted message.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsNotFound checks if an error indicates a missing registration.
func IsNotFound(err error) bool {
	return kindOf(err) == KindNotFound
}

// IsAlreadyExists checks if an error indicates a registration conflict.
func IsAlreadyExists(err error) bool {
	return kindOf(err) == KindAlreadyExists
}

// IsInvalidArgument checks if an error indicates a malformed entry or an
// unsatisfiable version floor.
func IsInvalidArgument(err error) bool {
	return kindOf(err) == KindInvalidArgument
}
