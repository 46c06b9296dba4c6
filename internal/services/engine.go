// Package services is the only write path into the store. Every
// mutation that touches more than one row runs inside a single
// transaction, so an invariant violation aborts the whole operation
// and leaves nothing partial behind.
package services

import (
	"github.com/jmoiron/sqlx"

	"fintracker/internal/db"
	"fintracker/internal/store"
)

type Engine struct {
	cfg store.Config
	db  *sqlx.DB
	tx  db.TxRunner

	currencies   *store.CurrencyStore
	wallets      *store.WalletStore
	categories   *store.CategoryStore
	transactions *store.TransactionStore
	transfers    *store.TransferStore
	debts        *store.DebtStore
	budgets      *store.BudgetStore
	savings      *store.SavingStore
	events       *store.EventStore
	places       *store.PlaceStore
	people       *store.PersonStore
	attachments  *store.AttachmentStore
	txModels     *store.TransactionModelStore
	trModels     *store.TransferModelStore
	recurringTx  *store.RecurringTransactionStore
	recurringTr  *store.RecurringTransferStore
	rescaler     *store.Rescaler

	transactionPeople      *store.LinkStore
	transactionAttachments *store.LinkStore
	transferPeople         *store.LinkStore
	transferAttachments    *store.LinkStore
	debtPeople             *store.LinkStore
	budgetWallets          *store.LinkStore
}

func NewEngine(dbx *sqlx.DB, cfg store.Config) *Engine {
	return &Engine{
		cfg: cfg,
		db:  dbx,
		tx:  db.NewTxRunner(dbx),

		currencies:   store.NewCurrencyStore(dbx, cfg),
		wallets:      store.NewWalletStore(dbx, cfg),
		categories:   store.NewCategoryStore(dbx, cfg),
		transactions: store.NewTransactionStore(dbx, cfg),
		transfers:    store.NewTransferStore(dbx, cfg),
		debts:        store.NewDebtStore(dbx, cfg),
		budgets:      store.NewBudgetStore(dbx, cfg),
		savings:      store.NewSavingStore(dbx, cfg),
		events:       store.NewEventStore(dbx, cfg),
		places:       store.NewPlaceStore(dbx, cfg),
		people:       store.NewPersonStore(dbx, cfg),
		attachments:  store.NewAttachmentStore(dbx, cfg),
		txModels:     store.NewTransactionModelStore(dbx, cfg),
		trModels:     store.NewTransferModelStore(dbx, cfg),
		recurringTx:  store.NewRecurringTransactionStore(dbx, cfg),
		recurringTr:  store.NewRecurringTransferStore(dbx, cfg),
		rescaler:     store.NewRescaler(dbx, cfg),

		transactionPeople:      store.NewTransactionPeople(dbx, cfg),
		transactionAttachments: store.NewTransactionAttachments(dbx, cfg),
		transferPeople:         store.NewTransferPeople(dbx, cfg),
		transferAttachments:    store.NewTransferAttachments(dbx, cfg),
		debtPeople:             store.NewDebtPeople(dbx, cfg),
		budgetWallets:          store.NewBudgetWallets(dbx, cfg),
	}
}
