// Package contract fixes the external field names of every entity. The
// names are stable: callers address data through them regardless of how
// the physical columns are laid out or renamed underneath.
package contract

// Kind identifies an entity collection.
type Kind string

const (
	KindCurrency             Kind = "currencies"
	KindWallet               Kind = "wallets"
	KindCategory             Kind = "categories"
	KindTransaction          Kind = "transactions"
	KindTransfer             Kind = "transfers"
	KindDebt                 Kind = "debts"
	KindBudget               Kind = "budgets"
	KindSaving               Kind = "savings"
	KindEvent                Kind = "events"
	KindPlace                Kind = "places"
	KindPerson               Kind = "people"
	KindAttachment           Kind = "attachments"
	KindTransactionModel     Kind = "models/transactions"
	KindTransferModel        Kind = "models/transfers"
	KindRecurringTransaction Kind = "recurrences/transactions"
	KindRecurringTransfer    Kind = "recurrences/transfers"
)

// Fields shared by every entity.
const (
	FieldID       = "id"
	FieldSyncID   = "sync_id"
	FieldLastEdit = "last_edit"
)

// Currency fields.
const (
	CurrencyISO       = "iso"
	CurrencyName      = "name"
	CurrencySymbol    = "symbol"
	CurrencyDecimals  = "decimals"
	CurrencyFavourite = "favourite"
)

// Wallet fields. TotalMoney is computed, never stored.
const (
	WalletName         = "name"
	WalletIcon         = "icon"
	WalletCurrency     = "currency"
	WalletNote         = "note"
	WalletCountInTotal = "count_in_total"
	WalletStartMoney   = "start_money"
	WalletTotalMoney   = "total_money"
	WalletArchived     = "archived"
	WalletTag          = "tag"
	WalletIndex        = "index"
)

// Category fields. ParentName is the denormalized name of the parent.
const (
	CategoryName       = "name"
	CategoryIcon       = "icon"
	CategoryType       = "type"
	CategoryParent     = "parent"
	CategoryParentName = "parent_name"
	CategoryShowReport = "show_report"
	CategoryIndex      = "index"
	CategoryTag        = "tag"
)

// Transaction fields. The category_*, wallet_*, place_* and event_*
// names expand the referenced entity into denormalized siblings.
const (
	TransactionMoney              = "money"
	TransactionDate               = "date"
	TransactionDescription        = "description"
	TransactionCategory           = "category"
	TransactionCategoryName       = "category_name"
	TransactionCategoryIcon       = "category_icon"
	TransactionCategoryType       = "category_type"
	TransactionCategoryTag        = "category_tag"
	TransactionCategoryShowReport = "category_show_report"
	TransactionDirection          = "direction"
	TransactionType               = "type"
	TransactionWallet             = "wallet"
	TransactionWalletName         = "wallet_name"
	TransactionWalletIcon         = "wallet_icon"
	TransactionWalletCurrency     = "wallet_currency"
	TransactionWalletCountInTotal = "wallet_count_in_total"
	TransactionWalletArchived     = "wallet_archived"
	TransactionWalletTag          = "wallet_tag"
	TransactionPlace              = "place"
	TransactionPlaceName          = "place_name"
	TransactionNote               = "note"
	TransactionEvent              = "event"
	TransactionEventName          = "event_name"
	TransactionDebt               = "debt"
	TransactionSaving             = "saving"
	TransactionRecurrence         = "recurrence"
	TransactionConfirmed          = "confirmed"
	TransactionCountInTotal       = "count_in_total"
	TransactionPeopleIDs          = "people_ids"
	TransactionAttachmentIDs      = "attachment_ids"
)

// Transfer fields.
const (
	TransferDescription     = "description"
	TransferDate            = "date"
	TransferFrom            = "transaction_from"
	TransferTo              = "transaction_to"
	TransferTax             = "transaction_tax"
	TransferMoney           = "money"
	TransferTaxMoney        = "tax_money"
	TransferWalletFrom      = "wallet_from"
	TransferWalletFromName  = "wallet_from_name"
	TransferWalletTo        = "wallet_to"
	TransferWalletToName    = "wallet_to_name"
	TransferNote            = "note"
	TransferPlace           = "place"
	TransferPlaceName       = "place_name"
	TransferEvent           = "event"
	TransferEventName       = "event_name"
	TransferRecurrence      = "recurrence"
	TransferConfirmed       = "confirmed"
	TransferCountInTotal    = "count_in_total"
	TransferPeopleIDs       = "people_ids"
	TransferAttachmentIDs   = "attachment_ids"
)

// Debt fields. Progress is the signed sum of paid-debt/paid-credit
// transactions referencing the debt.
const (
	DebtType           = "type"
	DebtIcon           = "icon"
	DebtDescription    = "description"
	DebtDate           = "date"
	DebtExpirationDate = "expiration_date"
	DebtWallet         = "wallet"
	DebtWalletName     = "wallet_name"
	DebtNote           = "note"
	DebtPlace          = "place"
	DebtPlaceName      = "place_name"
	DebtMoney          = "money"
	DebtProgress       = "progress"
	DebtArchived       = "archived"
	DebtPeopleIDs      = "people_ids"
)

// Budget fields.
const (
	BudgetType         = "type"
	BudgetCategory     = "category"
	BudgetCategoryName = "category_name"
	BudgetStartDate    = "start_date"
	BudgetEndDate      = "end_date"
	BudgetMoney        = "money"
	BudgetCurrency     = "currency"
	BudgetProgress     = "progress"
	BudgetWalletIDs    = "wallet_ids"
)

// Saving fields.
const (
	SavingDescription = "description"
	SavingIcon        = "icon"
	SavingStartMoney  = "start_money"
	SavingEndMoney    = "end_money"
	SavingWallet      = "wallet"
	SavingWalletName  = "wallet_name"
	SavingEndDate     = "end_date"
	SavingComplete    = "complete"
	SavingNote        = "note"
	SavingProgress    = "progress"
)

// Event fields. MoneyTotals is the per-currency signed total list.
const (
	EventName        = "name"
	EventIcon        = "icon"
	EventNote        = "note"
	EventStartDate   = "start_date"
	EventEndDate     = "end_date"
	EventMoneyTotals = "money_totals"
)

// Place fields.
const (
	PlaceName      = "name"
	PlaceIcon      = "icon"
	PlaceAddress   = "address"
	PlaceLatitude  = "latitude"
	PlaceLongitude = "longitude"
)

// Person fields.
const (
	PersonName = "name"
	PersonIcon = "icon"
	PersonNote = "note"
)

// Attachment fields.
const (
	AttachmentFile = "file"
	AttachmentName = "name"
	AttachmentType = "type"
	AttachmentSize = "size"
)

// Recurring transaction/transfer fields beyond the template ones.
const (
	RecurrenceRule           = "rule"
	RecurrenceStartDate      = "start_date"
	RecurrenceLastOccurrence = "last_occurrence"
	RecurrenceNextOccurrence = "next_occurrence"
)
