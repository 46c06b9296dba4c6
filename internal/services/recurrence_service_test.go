package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/store"
)

func TestCreateRecurringTransactionSetsNextOccurrence(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	rent := makeCategory(t, e, "Rent", store.CategoryTypeExpense)

	id, err := e.CreateRecurringTransaction(ctx, store.RecurringTransactionInput{
		Money: 80000, Description: "Rent", Category: rent,
		Direction: store.DirectionExpense, Wallet: wallet,
		Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=MONTHLY;COUNT=12",
	})
	require.NoError(t, err)

	rule, err := e.recurringTx.GetByID(ctx, e.db, id)
	require.NoError(t, err)
	require.False(t, rule.LastOccurrence.Valid)
	require.True(t, rule.NextOccurrence.Valid)
	require.Equal(t, "2024-01-01", rule.NextOccurrence.String)
}

func TestCreateRecurringTransactionRejectsBadRule(t *testing.T) {
	e, _ := newTestEngine(t)
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	rent := makeCategory(t, e, "Rent", store.CategoryTypeExpense)

	_, err := e.CreateRecurringTransaction(context.Background(), store.RecurringTransactionInput{
		Money: 80000, Category: rent, Direction: store.DirectionExpense,
		Wallet: wallet, StartDate: "2024-01-01", Rule: "EVERY FULL MOON",
	})
	require.ErrorIs(t, err, store.ErrInvalidRecurrenceRule)
}

func TestExpandDueMaterializesPendingOccurrences(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	coffee := makeCategory(t, e, "Coffee", store.CategoryTypeExpense)

	id, err := e.CreateRecurringTransaction(ctx, store.RecurringTransactionInput{
		Money: 300, Description: "Morning coffee", Category: coffee,
		Direction: store.DirectionExpense, Wallet: wallet,
		Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=DAILY;COUNT=5",
	})
	require.NoError(t, err)

	now := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	require.NoError(t, e.ExpandDue(ctx, now))

	var count int
	require.NoError(t, dbx.Get(&count, "SELECT COUNT(*) FROM transactions WHERE recurrence = ? AND deleted = 0", id))
	require.Equal(t, 3, count)

	rule, err := e.recurringTx.GetByID(ctx, e.db, id)
	require.NoError(t, err)
	require.Equal(t, "2024-01-03", rule.LastOccurrence.String)
	require.Equal(t, "2024-01-04", rule.NextOccurrence.String)

	row := viewRow(t, dbx, contract.KindWallet, wallet)
	require.Equal(t, int64(-900), asInt(t, row[contract.WalletTotalMoney]))

	// A second pass over the same window writes nothing.
	require.NoError(t, e.ExpandDue(ctx, now))
	require.NoError(t, dbx.Get(&count, "SELECT COUNT(*) FROM transactions WHERE recurrence = ? AND deleted = 0", id))
	require.Equal(t, 3, count)

	// Past the end of the schedule the rule is exhausted.
	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, dbx.Get(&count, "SELECT COUNT(*) FROM transactions WHERE recurrence = ? AND deleted = 0", id))
	require.Equal(t, 5, count)
	rule, err = e.recurringTx.GetByID(ctx, e.db, id)
	require.NoError(t, err)
	require.Equal(t, "2024-01-05", rule.LastOccurrence.String)
	require.False(t, rule.NextOccurrence.Valid)
}

func TestExpandDueMaterializesRecurringTransfers(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	checking := makeWallet(t, e, "Checking", "EUR", 10000)
	savings := makeWallet(t, e, "Savings", "EUR", 0)

	id, err := e.CreateRecurringTransfer(ctx, store.RecurringTransferInput{
		Description: "Weekly set-aside", WalletFrom: checking, WalletTo: savings,
		Money: 2000, Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=WEEKLY;COUNT=4",
	})
	require.NoError(t, err)

	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)))

	var transfers int
	require.NoError(t, dbx.Get(&transfers, "SELECT COUNT(*) FROM transfers WHERE recurrence = ? AND deleted = 0", id))
	require.Equal(t, 2, transfers)

	fromRow := viewRow(t, dbx, contract.KindWallet, checking)
	require.Equal(t, int64(6000), asInt(t, fromRow[contract.WalletTotalMoney]))
	toRow := viewRow(t, dbx, contract.KindWallet, savings)
	require.Equal(t, int64(4000), asInt(t, toRow[contract.WalletTotalMoney]))

	// Re-running the same window does not duplicate the legs.
	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, dbx.Get(&transfers, "SELECT COUNT(*) FROM transfers WHERE recurrence = ? AND deleted = 0", id))
	require.Equal(t, 2, transfers)
}

func TestUpdateRecurringTransactionRecomputesNext(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	coffee := makeCategory(t, e, "Coffee", store.CategoryTypeExpense)

	in := store.RecurringTransactionInput{
		Money: 300, Category: coffee, Direction: store.DirectionExpense,
		Wallet: wallet, Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=DAILY;COUNT=10",
	}
	id, err := e.CreateRecurringTransaction(ctx, in)
	require.NoError(t, err)
	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	// Switch to a weekly cadence: the next pointer moves past the
	// occurrences already written.
	in.Rule = "FREQ=WEEKLY;COUNT=10"
	require.NoError(t, e.UpdateRecurringTransaction(ctx, id, in))

	rule, err := e.recurringTx.GetByID(ctx, e.db, id)
	require.NoError(t, err)
	require.Equal(t, "2024-01-02", rule.LastOccurrence.String)
	require.Equal(t, "2024-01-08", rule.NextOccurrence.String)
}

func TestDeleteRecurringTransactionKeepsOccurrences(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	coffee := makeCategory(t, e, "Coffee", store.CategoryTypeExpense)

	id, err := e.CreateRecurringTransaction(ctx, store.RecurringTransactionInput{
		Money: 300, Category: coffee, Direction: store.DirectionExpense,
		Wallet: wallet, Confirmed: true, CountInTotal: true,
		StartDate: "2024-01-01", Rule: "FREQ=DAILY;COUNT=3",
	})
	require.NoError(t, err)
	require.NoError(t, e.ExpandDue(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, e.DeleteRecurringTransaction(ctx, id))

	var kept, linked int
	require.NoError(t, dbx.Get(&kept, "SELECT COUNT(*) FROM transactions WHERE deleted = 0"))
	require.Equal(t, 2, kept)
	require.NoError(t, dbx.Get(&linked, "SELECT COUNT(*) FROM transactions WHERE recurrence IS NOT NULL AND deleted = 0"))
	require.Zero(t, linked)
}
