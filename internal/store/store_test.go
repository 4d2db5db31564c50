package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

func ticket(id string) model.Ticket {
	return model.Ticket{
		ID:       id,
		Subject:  "Login issue",
		Status:   model.TicketOpen,
		Priority: model.PriorityHigh,
		Category: model.TicketAccount,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		kind    string
		records []model.Ticket
	}{
		{name: "valid", kind: "ticket", records: []model.Ticket{ticket("T-1"), ticket("T-2")}},
		{name: "empty list", kind: "ticket", records: nil},
		{name: "duplicate id", kind: "ticket", records: []model.Ticket{ticket("T-1"), ticket("T-1")}, wantErr: ErrDuplicateID},
		{name: "blank id", kind: "ticket", records: []model.Ticket{ticket("  ")}, wantErr: ErrEmptyID},
		{name: "missing kind", kind: "", records: nil, wantErr: ErrEmptyKind},
		{
			name: "invalid category",
			kind: "ticket",
			records: []model.Ticket{func() model.Ticket {
				tk := ticket("T-9")
				tk.Status = "pending"
				return tk
			}()},
			wantErr: model.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.kind, tt.records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.records), s.Len())
			assert.Equal(t, tt.kind, s.Kind())
		})
	}
}

func TestStore_IsImmutable(t *testing.T) {
	records := []model.Ticket{ticket("T-1"), ticket("T-2")}
	s, err := New("ticket", records)
	require.NoError(t, err)

	records[0].Subject = "changed by caller"
	all := s.All()
	assert.Equal(t, "Login issue", all[0].Subject)

	all[1].Subject = "changed by reader"
	again := s.All()
	assert.Equal(t, "Login issue", again[1].Subject)
}

func TestStore_Get(t *testing.T) {
	s, err := New("ticket", []model.Ticket{ticket("T-1"), ticket("T-2")})
	require.NoError(t, err)

	got, ok := s.Get("T-2")
	require.True(t, ok)
	assert.Equal(t, "T-2", got.ID)

	_, ok = s.Get("T-3")
	assert.False(t, ok)
}
