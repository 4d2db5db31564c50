package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/crm-dashboard/internal/service"
)

func TestSetupTestDB_Seeds(t *testing.T) {
	db := SetupTestDB(t, NewSubmissionBuilder(t).
		WithContact("C-1").
		WithContact("C-2").
		WithTicket("T-1").
		Build()...)

	assert.Equal(t, 2, db.MustCount("contact"))
	assert.Equal(t, 1, db.MustCount("ticket"))
	assert.Equal(t, 3, db.MustCount(""))
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db := SetupTestDB(t)
	rows := NewSubmissionBuilder(t).WithTicket("T-9").Build()

	errStop := errors.New("stop")
	err := db.WithTransaction(func(tx service.Transaction) error {
		require.NoError(t, tx.SaveSubmission(context.Background(), &rows[0]))
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Zero(t, db.MustCount(""))
}

func TestSubmissionBuilder_Immutable(t *testing.T) {
	base := NewSubmissionBuilder(t).WithContact("C-1")
	a := base.WithContact("C-2").Build()
	b := base.WithTicket("T-1").Build()

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	assert.Equal(t, "C-2", a[1].ID)
	assert.Equal(t, "T-1", b[1].ID)
	assert.True(t, a[1].SubmittedAt.After(a[0].SubmittedAt))
}
