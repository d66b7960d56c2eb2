package keystream

import (
	"errors"
	"fmt"
)

var errUnsupported = errors.New("unsupported")

// ProviderError reports a KDF or cipher that is unknown or could not be set up.
// It is never retried.
type ProviderError struct {
	Op   string // "kdf" or "cipher"
	Name string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("keystream: %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
