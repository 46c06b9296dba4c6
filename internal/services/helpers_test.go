package services

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/db"
	"fintracker/internal/schema"
	"fintracker/internal/store"
	"fintracker/internal/views"
)

// newTestEngine opens a fresh in-memory database with the full schema
// and seed data applied.
func newTestEngine(t *testing.T) (*Engine, *sqlx.DB) {
	t.Helper()
	dbx, err := db.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbx.Close() })
	require.NoError(t, schema.Migrate(dbx.DB))
	return NewEngine(dbx, store.Config{SoftDelete: true}), dbx
}

// testComposer pins "now" well past every fixture date so wallet
// totals include everything.
func testComposer(dbx *sqlx.DB) *views.Composer {
	return views.NewAt(dbx, func() time.Time {
		return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	})
}

func makeWallet(t *testing.T, e *Engine, name, currency string, startMoney int64) int64 {
	t.Helper()
	id, err := e.CreateWallet(context.Background(), store.WalletInput{
		Name: name, Currency: currency, StartMoney: startMoney, CountInTotal: true,
	})
	require.NoError(t, err)
	return id
}

func makeCategory(t *testing.T, e *Engine, name string, catType int) int64 {
	t.Helper()
	id, err := e.CreateCategory(context.Background(), store.CategoryInput{
		Name: name, Type: catType, ShowReport: true,
	})
	require.NoError(t, err)
	return id
}

func makeTransaction(t *testing.T, e *Engine, wallet, category, money int64, direction int, date string) int64 {
	t.Helper()
	id, err := e.CreateTransaction(context.Background(), TransactionDraft{
		TransactionInput: store.TransactionInput{
			Money: money, Date: date, Category: category, Direction: direction,
			Wallet: wallet, Confirmed: true, CountInTotal: true,
		},
	})
	require.NoError(t, err)
	return id
}

func contractQuery(kind contract.Kind) views.Query {
	return views.Query{Kind: kind}
}

// viewRow fetches one entity row through the composed view.
func viewRow(t *testing.T, dbx *sqlx.DB, kind contract.Kind, id int64) map[string]any {
	t.Helper()
	row, err := testComposer(dbx).Row(context.Background(), kind, id)
	require.NoError(t, err)
	require.NotNil(t, row, "no %s row with id %d", kind, id)
	return row
}

// asInt flattens the driver's integer representation.
func asInt(t *testing.T, v any) int64 {
	t.Helper()
	n, ok := v.(int64)
	require.True(t, ok, "value %#v is not an integer", v)
	return n
}
