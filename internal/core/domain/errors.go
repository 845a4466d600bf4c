package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrScoreNotFound      = errors.New("verified score not found")
	ErrInvalidInput       = errors.New("invalid input")
	// ErrInsufficientData marks a dataset with no usable signal; it is the
	// only caller-visible "cannot proceed" condition of the pipeline.
	ErrInsufficientData = errors.New("insufficient data")
	ErrTemporary        = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
