package store

import "fmt"

// Code is a stable integer error code meant to cross layer boundaries
// unchanged: callers and user interfaces key on the code, the message
// is for humans.
type Code int

const (
	CodeCurrencyInUse                 Code = 538
	CodeWalletUsedInTransfer          Code = 539
	CodeCategoryHasChildren           Code = 540
	CodeCategoryInUse                 Code = 541
	CodeCategoryHierarchyNotSupported Code = 542
	CodeCategoryNotConsistent         Code = 543
	CodeWalletsNotFound               Code = 544
	CodeWalletsNotConsistent          Code = 545
	CodeSystemCategoryNotModifiable   Code = 546
	CodeTransactionUsedInTransfer     Code = 547
	CodeInvalidRecurrenceRule         Code = 548
)

// Error is an invariant violation. It aborts the mutation that raised
// it; nothing is retried and, because every composite mutation runs in
// one transaction, nothing partial stays behind.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s (code %d)", e.Message, e.Code)
}

// Is matches two store errors by code, so
// errors.Is(err, store.ErrCategoryInUse) works on wrapped values.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

var (
	ErrCurrencyInUse                 = &Error{CodeCurrencyInUse, "currency is referenced by a wallet"}
	ErrWalletUsedInTransfer          = &Error{CodeWalletUsedInTransfer, "wallet has transactions belonging to a transfer"}
	ErrCategoryHasChildren           = &Error{CodeCategoryHasChildren, "category has child categories"}
	ErrCategoryInUse                 = &Error{CodeCategoryInUse, "category is referenced by other entities"}
	ErrCategoryHierarchyNotSupported = &Error{CodeCategoryHierarchyNotSupported, "category hierarchy deeper than one level is not supported"}
	ErrCategoryNotConsistent         = &Error{CodeCategoryNotConsistent, "category type differs from its parent type"}
	ErrWalletsNotFound               = &Error{CodeWalletsNotFound, "budget requires at least one existing wallet"}
	ErrWalletsNotConsistent          = &Error{CodeWalletsNotConsistent, "budget wallets must share one currency"}
	ErrSystemCategoryNotModifiable   = &Error{CodeSystemCategoryNotModifiable, "system categories cannot be modified"}
	ErrTransactionUsedInTransfer     = &Error{CodeTransactionUsedInTransfer, "transaction belongs to a transfer"}
	ErrInvalidRecurrenceRule         = &Error{CodeInvalidRecurrenceRule, "recurrence rule cannot be parsed"}
)
