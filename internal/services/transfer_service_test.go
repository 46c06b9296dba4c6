package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/store"
)

func TestTransferMovesMoneyPlusTax(t *testing.T) {
	e, dbx := newTestEngine(t)
	from := makeWallet(t, e, "Cash", "EUR", 1000)
	to := makeWallet(t, e, "Bank", "EUR", 0)

	id, err := e.CreateTransfer(context.Background(), TransferDraft{
		Description: "top up", Date: "2024-02-01",
		WalletFrom: from, WalletTo: to, Money: 500, TaxMoney: 50,
		Confirmed: true, CountInTotal: true,
	})
	require.NoError(t, err)

	// Source loses money plus tax, destination gains exactly money.
	fromRow := viewRow(t, dbx, contract.KindWallet, from)
	require.Equal(t, int64(450), asInt(t, fromRow[contract.WalletTotalMoney]))
	toRow := viewRow(t, dbx, contract.KindWallet, to)
	require.Equal(t, int64(500), asInt(t, toRow[contract.WalletTotalMoney]))

	row := viewRow(t, dbx, contract.KindTransfer, id)
	require.Equal(t, int64(500), asInt(t, row[contract.TransferMoney]))
	require.Equal(t, int64(50), asInt(t, row[contract.TransferTaxMoney]))
	require.Equal(t, "Cash", row[contract.TransferWalletFromName])
	require.Equal(t, "Bank", row[contract.TransferWalletToName])
}

func countLiveLegs(t *testing.T, e *Engine, transferID int64) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, `
		SELECT COUNT(*) FROM transactions t
		JOIN transfers f ON t.id IN (f.transaction_from, f.transaction_to, f.transaction_tax)
		WHERE f.id = ? AND t.deleted = 0
	`, transferID))
	return n
}

func TestTransferTaxLegAppearsAndDisappears(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	from := makeWallet(t, e, "Cash", "EUR", 1000)
	to := makeWallet(t, e, "Bank", "EUR", 0)

	draft := TransferDraft{
		Date: "2024-02-01", WalletFrom: from, WalletTo: to, Money: 300,
		Confirmed: true, CountInTotal: true,
	}
	id, err := e.CreateTransfer(ctx, draft)
	require.NoError(t, err)
	require.Equal(t, 2, countLiveLegs(t, e, id))

	draft.TaxMoney = 30
	require.NoError(t, e.UpdateTransfer(ctx, id, draft))
	require.Equal(t, 3, countLiveLegs(t, e, id))
	fromRow := viewRow(t, dbx, contract.KindWallet, from)
	require.Equal(t, int64(670), asInt(t, fromRow[contract.WalletTotalMoney]))

	draft.TaxMoney = 0
	require.NoError(t, e.UpdateTransfer(ctx, id, draft))
	require.Equal(t, 2, countLiveLegs(t, e, id))
	row := viewRow(t, dbx, contract.KindTransfer, id)
	require.Equal(t, int64(0), asInt(t, row[contract.TransferTaxMoney]))
}

func TestDeleteTransferRemovesLegs(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	from := makeWallet(t, e, "Cash", "EUR", 1000)
	to := makeWallet(t, e, "Bank", "EUR", 0)

	id, err := e.CreateTransfer(ctx, TransferDraft{
		Date: "2024-02-01", WalletFrom: from, WalletTo: to, Money: 500, TaxMoney: 25,
		Confirmed: true, CountInTotal: true,
	})
	require.NoError(t, err)
	require.NoError(t, e.DeleteTransfer(ctx, id))

	var liveLegs int
	require.NoError(t, dbx.Get(&liveLegs,
		"SELECT COUNT(*) FROM transactions WHERE type = ? AND deleted = 0", store.TransactionTypeTransfer))
	require.Zero(t, liveLegs)

	fromRow := viewRow(t, dbx, contract.KindWallet, from)
	require.Equal(t, int64(1000), asInt(t, fromRow[contract.WalletTotalMoney]))
}

func TestTransferLegsNotEditableDirectly(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	from := makeWallet(t, e, "Cash", "EUR", 1000)
	to := makeWallet(t, e, "Bank", "EUR", 0)

	id, err := e.CreateTransfer(ctx, TransferDraft{
		Date: "2024-02-01", WalletFrom: from, WalletTo: to, Money: 500,
		Confirmed: true, CountInTotal: true,
	})
	require.NoError(t, err)

	transfer, err := e.transfers.GetByID(ctx, e.db, id)
	require.NoError(t, err)

	err = e.DeleteTransaction(ctx, transfer.TransactionFrom)
	require.ErrorIs(t, err, store.ErrTransactionUsedInTransfer)

	err = e.UpdateTransaction(ctx, transfer.TransactionTo, TransactionDraft{})
	require.ErrorIs(t, err, store.ErrTransactionUsedInTransfer)
}
