package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

func TestValidateContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	if err := validateContext(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("validateContext(nil) = %v, want %v", err, ErrNilContext)
	}
	if err := validateContext(context.Background()); err != nil {
		t.Errorf("validateContext() = %v, want nil", err)
	}
}

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		sub     *model.Submission
		wantErr error
		name    string
	}{
		{name: "valid", sub: &model.Submission{ID: "a", Kind: "deal", Payload: []byte(`{}`)}},
		{name: "nil", sub: nil, wantErr: ErrNilParameter},
		{name: "blank id", sub: &model.Submission{ID: " ", Kind: "deal", Payload: []byte(`{}`)}, wantErr: ErrInvalidSubmission},
		{name: "empty payload", sub: &model.Submission{ID: "a", Kind: "deal"}, wantErr: ErrInvalidSubmission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmission(tt.sub)
			if tt.wantErr == nil && err != nil {
				t.Errorf("validateSubmission() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSubmission() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
