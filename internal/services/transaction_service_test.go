package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintracker/internal/recurrence"
	"fintracker/internal/store"
)

func TestCreateTransactionDerivesRecurrenceSyncID(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	rent := makeCategory(t, e, "Rent", store.CategoryTypeExpense)

	ruleID, err := e.CreateRecurringTransaction(ctx, store.RecurringTransactionInput{
		Money: 80000, Description: "Rent", Category: rent,
		Direction: store.DirectionExpense, Wallet: wallet,
		Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=MONTHLY;COUNT=12",
	})
	require.NoError(t, err)
	rule, err := e.recurringTx.GetByID(ctx, e.db, ruleID)
	require.NoError(t, err)

	// Filing an occurrence by hand mints the same stable id the
	// expander would derive for that date.
	txID, err := e.CreateTransaction(ctx, TransactionDraft{TransactionInput: store.TransactionInput{
		Money: 80000, Date: "2024-01-01", Category: rent,
		Direction: store.DirectionExpense, Wallet: wallet,
		Recurrence: &ruleID, Confirmed: true, CountInTotal: true,
	}})
	require.NoError(t, err)

	row, err := e.transactions.GetByID(ctx, e.db, txID)
	require.NoError(t, err)
	want := recurrence.OccurrenceSyncID(rule.SyncID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, want, row.SyncID)

	// The expander recognizes the hand-filed occurrence and skips it.
	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	var count int
	require.NoError(t, dbx.Get(&count, "SELECT COUNT(*) FROM transactions WHERE recurrence = ? AND deleted = 0", ruleID))
	require.Equal(t, 1, count)
}

func TestCreateTransactionKeepsExplicitSyncID(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	food := makeCategory(t, e, "Food", store.CategoryTypeExpense)

	txID, err := e.CreateTransaction(ctx, TransactionDraft{TransactionInput: store.TransactionInput{
		Money: 500, Date: "2024-03-01", Category: food,
		Direction: store.DirectionExpense, Wallet: wallet,
		Confirmed: true, CountInTotal: true, SyncID: "imported-42",
	}})
	require.NoError(t, err)

	row, err := e.transactions.GetByID(ctx, e.db, txID)
	require.NoError(t, err)
	require.Equal(t, "imported-42", row.SyncID)
}
