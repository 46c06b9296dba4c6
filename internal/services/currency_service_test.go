package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/store"
)

func TestDeleteCurrencyGuardedWhileInUse(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	makeWallet(t, e, "Cash", "EUR", 0)

	require.ErrorIs(t, e.DeleteCurrency(ctx, "EUR"), store.ErrCurrencyInUse)

	require.NoError(t, e.DeleteCurrency(ctx, "CHF"))
	rows, err := testComposer(dbx).Rows(ctx, contractQuery(contract.KindCurrency))
	require.NoError(t, err)
	for _, row := range rows {
		require.NotEqual(t, "CHF", row[contract.CurrencyISO])
	}
}

func TestChangingDecimalsRescalesAmounts(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	cat := makeCategory(t, e, "Groceries", store.CategoryTypeExpense)
	wallet := makeWallet(t, e, "Cash", "EUR", 700)
	txID := makeTransaction(t, e, wallet, cat, 50, store.DirectionExpense, "2024-02-01")

	eur := store.CurrencyInput{ISO: "EUR", Name: "Euro", Symbol: "€", Favourite: true}

	eur.Decimals = 3
	require.NoError(t, e.UpdateCurrency(ctx, "EUR", eur, true))
	require.Equal(t, int64(7000), asInt(t, viewRow(t, dbx, contract.KindWallet, wallet)[contract.WalletStartMoney]))
	require.Equal(t, int64(500), asInt(t, viewRow(t, dbx, contract.KindTransaction, txID)[contract.TransactionMoney]))

	eur.Decimals = 2
	require.NoError(t, e.UpdateCurrency(ctx, "EUR", eur, true))
	require.Equal(t, int64(700), asInt(t, viewRow(t, dbx, contract.KindWallet, wallet)[contract.WalletStartMoney]))
	require.Equal(t, int64(50), asInt(t, viewRow(t, dbx, contract.KindTransaction, txID)[contract.TransactionMoney]))
}

func TestChangingDecimalsWithoutNormalizeKeepsAmounts(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	wallet := makeWallet(t, e, "Cash", "EUR", 700)

	// The declared precision moves, the stored minor units do not.
	require.NoError(t, e.UpdateCurrency(ctx, "EUR", store.CurrencyInput{
		ISO: "EUR", Name: "Euro", Symbol: "€", Decimals: 3, Favourite: true,
	}, false))

	require.Equal(t, int64(700), asInt(t, viewRow(t, dbx, contract.KindWallet, wallet)[contract.WalletStartMoney]))
	var decimals int
	require.NoError(t, dbx.Get(&decimals, "SELECT decimals FROM currencies WHERE iso = 'EUR'"))
	require.Equal(t, 3, decimals)
}

func TestRescaleLeavesOtherCurrenciesAlone(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	eurWallet := makeWallet(t, e, "Cash", "EUR", 700)
	jpyWallet := makeWallet(t, e, "Tokyo", "JPY", 9000)

	require.NoError(t, e.UpdateCurrency(ctx, "EUR", store.CurrencyInput{
		ISO: "EUR", Name: "Euro", Symbol: "€", Decimals: 0, Favourite: true,
	}, true))

	require.Equal(t, int64(7), asInt(t, viewRow(t, dbx, contract.KindWallet, eurWallet)[contract.WalletStartMoney]))
	require.Equal(t, int64(9000), asInt(t, viewRow(t, dbx, contract.KindWallet, jpyWallet)[contract.WalletStartMoney]))
}
