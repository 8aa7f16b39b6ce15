package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
)

func TestTrackingLedgerAppendAndHistory(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	ledger, err := NewTrackingLedger(db)
	require.NoError(t, err)

	staffID := uint(7)
	require.NoError(t, ledger.Append(db, 1, models.RequestStatusPending, "Request submitted", nil))
	require.NoError(t, ledger.Append(db, 1, models.RequestStatusProcessing, "Status updated to Processing", &staffID))
	require.NoError(t, ledger.Append(db, 2, models.RequestStatusPending, "Request submitted", nil))

	history, err := ledger.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first; id breaks ties within the same timestamp.
	require.Equal(t, models.RequestStatusProcessing, history[0].Status)
	require.Equal(t, models.RequestStatusPending, history[1].Status)
	require.NotNil(t, history[0].UpdatedBy)
	require.Equal(t, staffID, *history[0].UpdatedBy)
	require.Nil(t, history[1].UpdatedBy)
}

func TestTrackingLedgerAppendValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	ledger, err := NewTrackingLedger(db)
	require.NoError(t, err)

	require.Error(t, ledger.Append(nil, 1, models.RequestStatusPending, "", nil))
	require.Error(t, ledger.Append(db, 0, models.RequestStatusPending, "", nil))
	require.Error(t, ledger.Append(db, 1, "  ", "", nil))
}
