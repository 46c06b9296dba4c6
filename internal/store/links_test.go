package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconcileFlagsThenUpserts(t *testing.T) {
	rec := &recordingExecer{}
	links := NewTransactionPeople(stubDB{}, Config{SoftDelete: true})

	err := links.Reconcile(context.Background(), rec, 5, []int64{3, 7})
	require.NoError(t, err)
	require.Len(t, rec.queries, 3)

	require.Contains(t, rec.queries[0], "SET deleted = 1")
	require.Contains(t, rec.queries[0], "transaction_id = ?")

	for _, q := range rec.queries[1:] {
		require.Contains(t, q, "INSERT INTO transaction_people")
		require.Contains(t, q, "ON CONFLICT(transaction_id, person_id)")
		require.Contains(t, q, "DO UPDATE SET deleted = 0")
	}
	require.Equal(t, int64(5), rec.args[1][0])
	require.Equal(t, int64(3), rec.args[1][1])
	require.Equal(t, int64(7), rec.args[2][1])
}

func TestReconcileEmptySetOnlyFlags(t *testing.T) {
	rec := &recordingExecer{}
	links := NewBudgetWallets(stubDB{}, Config{SoftDelete: true})

	err := links.Reconcile(context.Background(), rec, 9, nil)
	require.NoError(t, err)
	require.Len(t, rec.queries, 1)
	require.Contains(t, rec.queries[0], "budget_wallets")
}

func TestDeleteByOwnerHonorsDeleteMode(t *testing.T) {
	soft := &recordingExecer{}
	_, err := NewDebtPeople(stubDB{}, Config{SoftDelete: true}).DeleteByOwner(context.Background(), soft, 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(soft.queries[0], "UPDATE debt_people SET deleted = 1"))

	hard := &recordingExecer{}
	_, err = NewDebtPeople(stubDB{}, Config{SoftDelete: false}).DeleteByOwner(context.Background(), hard, 4)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hard.queries[0], "DELETE FROM debt_people"))
}

func TestTargetIDsFiltersDeleted(t *testing.T) {
	var captured string
	db := stubDB{
		selectFn: func(ctx context.Context, dest any, query string, args ...any) error {
			captured = query
			ids := dest.(*[]int64)
			*ids = []int64{3, 7, 12}
			return nil
		},
	}
	links := NewTransferAttachments(db, Config{SoftDelete: true})
	ids, err := links.TargetIDs(context.Background(), db, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 7, 12}, ids)
	require.Contains(t, captured, "deleted = 0")
	require.Contains(t, captured, "ORDER BY id")
}
