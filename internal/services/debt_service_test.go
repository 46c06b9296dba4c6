package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/store"
)

func TestCreateDebtRecordsMasterTransaction(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)

	id, err := e.CreateDebt(ctx, DebtDraft{DebtInput: store.DebtInput{
		Type: store.DebtTypeDebt, Description: "Loan from Sam",
		Date: "2024-02-01", Wallet: wallet, Money: 5000,
	}})
	require.NoError(t, err)

	// Borrowed money enters the wallet through the master.
	row := viewRow(t, dbx, contract.KindWallet, wallet)
	require.Equal(t, int64(5000), asInt(t, row[contract.WalletTotalMoney]))

	debtCat, err := e.categories.GetByTag(ctx, e.db, store.TagDebt)
	require.NoError(t, err)
	master, err := e.transactions.FindDebtMaster(ctx, e.db, id, debtCat.ID)
	require.NoError(t, err)
	require.Equal(t, int64(5000), master.Money)
	require.Equal(t, store.DirectionIncome, master.Direction)
}

func TestUpdateDebtPropagatesToMaster(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)

	draft := DebtDraft{DebtInput: store.DebtInput{
		Type: store.DebtTypeDebt, Description: "Loan from Sam",
		Date: "2024-02-01", Wallet: wallet, Money: 5000,
	}}
	id, err := e.CreateDebt(ctx, draft)
	require.NoError(t, err)

	draft.Money = 6000
	draft.Date = "2024-02-10"
	require.NoError(t, e.UpdateDebt(ctx, id, draft))

	debtCat, err := e.categories.GetByTag(ctx, e.db, store.TagDebt)
	require.NoError(t, err)
	master, err := e.transactions.FindDebtMaster(ctx, e.db, id, debtCat.ID)
	require.NoError(t, err)
	require.Equal(t, int64(6000), master.Money)
	require.Equal(t, "2024-02-10", master.Date)

	row := viewRow(t, dbx, contract.KindWallet, wallet)
	require.Equal(t, int64(6000), asInt(t, row[contract.WalletTotalMoney]))
}

func TestDebtProgressTracksRepayments(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)

	id, err := e.CreateDebt(ctx, DebtDraft{DebtInput: store.DebtInput{
		Type: store.DebtTypeDebt, Description: "Loan from Sam",
		Date: "2024-02-01", Wallet: wallet, Money: 5000,
	}})
	require.NoError(t, err)

	paid, err := e.categories.GetByTag(ctx, e.db, store.TagPaidDebt)
	require.NoError(t, err)
	_, err = e.CreateTransaction(ctx, TransactionDraft{TransactionInput: store.TransactionInput{
		Money: 1500, Date: "2024-03-01", Category: paid.ID,
		Direction: store.DirectionExpense, Wallet: wallet, Debt: &id,
		Confirmed: true, CountInTotal: true,
	}})
	require.NoError(t, err)

	row := viewRow(t, dbx, contract.KindDebt, id)
	require.Equal(t, int64(-1500), asInt(t, row[contract.DebtProgress]))
	require.Equal(t, int64(5000), asInt(t, row[contract.DebtMoney]))
}

func TestDeleteDebtRemovesItsTransactions(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 0)

	id, err := e.CreateDebt(ctx, DebtDraft{DebtInput: store.DebtInput{
		Type: store.DebtTypeCredit, Description: "Lent to Alex",
		Date: "2024-02-01", Wallet: wallet, Money: 2000,
	}})
	require.NoError(t, err)
	require.NoError(t, e.DeleteDebt(ctx, id))

	var live int
	require.NoError(t, dbx.Get(&live, "SELECT COUNT(*) FROM transactions WHERE debt = ? AND deleted = 0", id))
	require.Zero(t, live)

	row := viewRow(t, dbx, contract.KindWallet, wallet)
	require.Equal(t, int64(0), asInt(t, row[contract.WalletTotalMoney]))
}
