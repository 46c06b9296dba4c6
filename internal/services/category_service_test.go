package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fintracker/internal/contract"
	"fintracker/internal/store"
)

func TestCategoryHierarchyOneLevelDeep(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	parent := makeCategory(t, e, "Food", store.CategoryTypeExpense)

	child, err := e.CreateCategory(ctx, store.CategoryInput{
		Name: "Groceries", Type: store.CategoryTypeExpense, Parent: &parent,
	})
	require.NoError(t, err)

	_, err = e.CreateCategory(ctx, store.CategoryInput{
		Name: "Vegetables", Type: store.CategoryTypeExpense, Parent: &child,
	})
	require.ErrorIs(t, err, store.ErrCategoryHierarchyNotSupported)
}

func TestCategoryParentTypeMustMatch(t *testing.T) {
	e, _ := newTestEngine(t)
	parent := makeCategory(t, e, "Food", store.CategoryTypeExpense)

	_, err := e.CreateCategory(context.Background(), store.CategoryInput{
		Name: "Bonus", Type: store.CategoryTypeIncome, Parent: &parent,
	})
	require.ErrorIs(t, err, store.ErrCategoryNotConsistent)
}

func TestSystemCategoriesProtected(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()

	var transferID int64
	require.NoError(t, dbx.Get(&transferID, "SELECT id FROM categories WHERE tag = 'transfer'"))

	_, err := e.CreateCategory(ctx, store.CategoryInput{Name: "Fake", Type: store.CategoryTypeSystem})
	require.ErrorIs(t, err, store.ErrSystemCategoryNotModifiable)

	err = e.UpdateCategory(ctx, transferID, store.CategoryInput{Name: "Renamed", Type: store.CategoryTypeExpense})
	require.ErrorIs(t, err, store.ErrSystemCategoryNotModifiable)

	err = e.DeleteCategory(ctx, transferID)
	require.ErrorIs(t, err, store.ErrSystemCategoryNotModifiable)

	// Report visibility is the one mutable flag.
	require.NoError(t, e.SetCategoryShowReport(ctx, transferID, true))
	row := viewRow(t, dbx, contract.KindCategory, transferID)
	require.Equal(t, int64(1), asInt(t, row[contract.CategoryShowReport]))
}

func TestCategoryTypeChangeRestampsDirections(t *testing.T) {
	e, dbx := newTestEngine(t)
	ctx := context.Background()
	cat := makeCategory(t, e, "Side gig", store.CategoryTypeExpense)
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	txID := makeTransaction(t, e, wallet, cat, 100, store.DirectionExpense, "2024-02-01")

	require.NoError(t, e.UpdateCategory(ctx, cat, store.CategoryInput{
		Name: "Side gig", Type: store.CategoryTypeIncome, ShowReport: true,
	}))

	row := viewRow(t, dbx, contract.KindTransaction, txID)
	require.Equal(t, int64(store.DirectionIncome), asInt(t, row[contract.TransactionDirection]))

	walletRow := viewRow(t, dbx, contract.KindWallet, wallet)
	require.Equal(t, int64(100), asInt(t, walletRow[contract.WalletTotalMoney]))
}

func TestDeleteCategoryGuards(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	parent := makeCategory(t, e, "Food", store.CategoryTypeExpense)
	_, err := e.CreateCategory(ctx, store.CategoryInput{
		Name: "Groceries", Type: store.CategoryTypeExpense, Parent: &parent,
	})
	require.NoError(t, err)
	require.ErrorIs(t, e.DeleteCategory(ctx, parent), store.ErrCategoryHasChildren)

	used := makeCategory(t, e, "Rent", store.CategoryTypeExpense)
	wallet := makeWallet(t, e, "Cash", "EUR", 0)
	makeTransaction(t, e, wallet, used, 900, store.DirectionExpense, "2024-02-01")
	require.ErrorIs(t, e.DeleteCategory(ctx, used), store.ErrCategoryInUse)

	unused := makeCategory(t, e, "Hobby", store.CategoryTypeExpense)
	require.NoError(t, e.DeleteCategory(ctx, unused))
}
