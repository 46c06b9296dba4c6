package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionInsertMintsSyncID(t *testing.T) {
	rec := &recordingExecer{}
	s := NewTransactionStore(stubDB{}, Config{SoftDelete: true})

	_, err := s.Insert(context.Background(), rec, TransactionInput{
		Money: 1500, Date: "2024-05-01", Category: 2, Wallet: 1,
	})
	require.NoError(t, err)
	require.Len(t, rec.queries, 1)

	// sync_id is second to last, before last_edit.
	syncID := rec.args[0][len(rec.args[0])-2].(string)
	require.NotEmpty(t, syncID)
}

func TestTransactionInsertKeepsSyncIDOverride(t *testing.T) {
	rec := &recordingExecer{}
	s := NewTransactionStore(stubDB{}, Config{SoftDelete: true})

	_, err := s.Insert(context.Background(), rec, TransactionInput{
		Money: 1500, Date: "2024-05-01", Category: 2, Wallet: 1,
		SyncID: "rule-1:2024-05-01",
	})
	require.NoError(t, err)

	syncID := rec.args[0][len(rec.args[0])-2].(string)
	require.Equal(t, "rule-1:2024-05-01", syncID)
}

func TestTransactionDeleteHonorsDeleteMode(t *testing.T) {
	soft := &recordingExecer{}
	_, err := NewTransactionStore(stubDB{}, Config{SoftDelete: true}).Delete(context.Background(), soft, 8)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(soft.queries[0], "UPDATE transactions SET deleted = 1"))

	hard := &recordingExecer{}
	_, err = NewTransactionStore(stubDB{}, Config{SoftDelete: false}).Delete(context.Background(), hard, 8)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hard.queries[0], "DELETE FROM transactions"))
}

func TestTransactionUsedInTransferCoversAllLegs(t *testing.T) {
	var captured string
	getter := stubGetter{
		getFn: func(ctx context.Context, dest any, query string, args ...any) error {
			captured = query
			*(dest.(*int)) = 1
			return nil
		},
	}
	s := NewTransactionStore(stubDB{}, Config{SoftDelete: true})
	used, err := s.UsedInTransfer(context.Background(), getter, 3)
	require.NoError(t, err)
	require.True(t, used)
	require.Contains(t, captured, "transaction_from = ?")
	require.Contains(t, captured, "transaction_to = ?")
	require.Contains(t, captured, "transaction_tax = ?")
	require.Contains(t, captured, "deleted = 0")
}
