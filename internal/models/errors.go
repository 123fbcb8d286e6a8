package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrTransactionNotFound is returned by owner-filtered writes: a
	// transaction owned by someone else is indistinguishable from one
	// that does not exist.
	ErrTransactionNotFound = fmt.Errorf("%w transaction matching your query", ErrResourceNotFound)

	// Authorization
	ErrNotAuthenticated = errors.New("you need to be logged in for this request")
	ErrNotAuthorized    = errors.New("you are not allowed to perform this action")

	// Unique fields on users
	ErrHandleTaken = errors.New("this handle is already taken")
	ErrEmailTaken  = errors.New("this email address is already registered")

	// Households
	ErrAlreadyInHousehold = errors.New("you already belong to a household")

	// ErrNoHousehold resolves to a 404 since a household-scoped request
	// by an unaffiliated user references a household that does not exist.
	ErrNoHousehold     = fmt.Errorf("%w household you belong to", ErrResourceNotFound)
	ErrCurrencyInvalid = errors.New("the currency must be a valid ISO 4217 code")

	// Budgets
	ErrBudgetNotShared   = errors.New("only household budgets can be assigned to a user")
	ErrAssigneeNotMember = errors.New("budgets can only be assigned to current household members")

	// Transactions
	ErrScopeInvalid     = errors.New("the scope must be either personal or household")
	ErrKindInvalid      = errors.New("the transaction kind must be either income or expense")
	ErrMagnitudeInvalid = errors.New("the amount must not be negative")
)
