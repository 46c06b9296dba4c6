// Package schema is the physical schema registry: table names, the
// foreign-key graph and the versioned migrations that create them.
//
// Referential actions follow ownership: link tables cascade with their
// owner, optional references (place, event, saving, debt, recurrence)
// are set to NULL when the target is physically removed. Soft deletion
// never triggers either action; it is handled in queries.
package schema

// Physical table names. Everything above the driver goes through these
// constants so the virtual naming layer has a single place to point at.
const (
	TableCurrencies            = "currencies"
	TableWallets               = "wallets"
	TableCategories            = "categories"
	TableTransactions          = "transactions"
	TableTransfers             = "transfers"
	TableDebts                 = "debts"
	TableBudgets               = "budgets"
	TableSavings               = "savings"
	TableEvents                = "events"
	TablePlaces                = "places"
	TablePeople                = "people"
	TableAttachments           = "attachments"
	TableTransactionModels     = "transaction_models"
	TableTransferModels        = "transfer_models"
	TableRecurringTransactions = "recurring_transactions"
	TableRecurringTransfers    = "recurring_transfers"
	TableTransactionPeople     = "transaction_people"
	TableTransactionAttachments = "transaction_attachments"
	TableTransferPeople        = "transfer_people"
	TableTransferAttachments   = "transfer_attachments"
	TableDebtPeople            = "debt_people"
	TableBudgetWallets         = "budget_wallets"
)

// Columns shared by every table.
const (
	ColID       = "id"
	ColSyncID   = "sync_id"
	ColLastEdit = "last_edit"
	ColDeleted  = "deleted"
)
