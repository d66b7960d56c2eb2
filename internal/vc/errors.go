package vc

import (
	"errors"
	"fmt"
)

// ErrContract is matched by every *ContractError.
var ErrContract = errors.New("contract violation")

// ContractError reports caller input the generator cannot honour: a symbol
// outside the vocabulary, a plaintext or grid of the wrong size, or invalid
// parameters.
type ContractError struct {
	Reason string
	Err    error
}

func (e *ContractError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vc: %s: %v", e.Reason, e.Err)
	}
	return "vc: " + e.Reason
}

func (e *ContractError) Is(target error) bool { return target == ErrContract }

func (e *ContractError) Unwrap() error { return e.Err }

func contractf(format string, args ...any) error {
	return &ContractError{Reason: fmt.Sprintf(format, args...)}
}
