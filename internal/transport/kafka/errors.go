package kafka

import "errors"

// PermanentError marks a message that would fail the same way on every redelivery.
// The consumer logs it and commits the offset instead of retrying.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent failure"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the consumer skips the message. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in its chain.
func IsPermanent(err error) bool {
	var perm PermanentError
	return errors.As(err, &perm)
}
