package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidSubmission = errors.New("invalid submission")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSubmissions(submissions []model.Submission) error {
	if submissions == nil {
		return fmt.Errorf("%w: submissions", ErrNilParameter)
	}
	if len(submissions) == 0 {
		return fmt.Errorf("%w: submissions", ErrEmptySlice)
	}

	for i := range submissions {
		if err := validateSubmission(&submissions[i]); err != nil {
			return fmt.Errorf("submission at index %d: %w", i, err)
		}
	}
	return nil
}

func validateSubmission(sub *model.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission", ErrNilParameter)
	}
	if strings.TrimSpace(sub.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSubmission)
	}
	if strings.TrimSpace(sub.Kind) == "" {
		return fmt.Errorf("%w: missing kind", ErrInvalidSubmission)
	}
	if !json.Valid(sub.Payload) {
		return fmt.Errorf("%w: payload is not valid JSON", ErrInvalidSubmission)
	}
	return nil
}
