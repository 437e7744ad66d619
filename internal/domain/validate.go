package domain

import (
	"fmt"
	"strings"
)

// ValidateTransaction enforces the state-aware ledger invariants. Planned
// transactions only need well-formed tags; confirmed ones must also carry
// the accounts and category their type requires.
func ValidateTransaction(tx *Transaction) error {
	if !tx.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", tx.Type)}
	}
	if !tx.State.Valid() {
		return &ValidationError{Field: "state", Reason: fmt.Sprintf("unknown state %q", tx.State)}
	}
	if tx.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if tx.State == StatePlanned {
		return nil
	}

	switch tx.Type {
	case TypeExpense:
		if tx.OriginAccountID == nil {
			return &ValidationError{Field: "origin_account_id", Reason: "required for expense"}
		}
		if tx.DestinationAccountID != nil {
			return &ValidationError{Field: "destination_account_id", Reason: "not allowed for expense"}
		}
		if tx.CategoryID == nil {
			return &ValidationError{Field: "category_id", Reason: "required for expense"}
		}
	case TypeIncome:
		if tx.DestinationAccountID == nil {
			return &ValidationError{Field: "destination_account_id", Reason: "required for income"}
		}
		if tx.OriginAccountID != nil {
			return &ValidationError{Field: "origin_account_id", Reason: "not allowed for income"}
		}
		if tx.CategoryID == nil {
			return &ValidationError{Field: "category_id", Reason: "required for income"}
		}
	case TypeTransfer:
		if tx.OriginAccountID == nil || tx.DestinationAccountID == nil {
			return &ValidationError{Field: "account", Reason: "transfer needs origin and destination accounts"}
		}
		if *tx.OriginAccountID == *tx.DestinationAccountID {
			return &ValidationError{Field: "destination_account_id", Reason: "must differ from origin"}
		}
		if tx.CategoryID != nil {
			return &ValidationError{Field: "category_id", Reason: "not allowed for transfer"}
		}
	}
	return nil
}

// ValidateRule checks a recurring rule before it is stored or expanded.
func ValidateRule(r *Rule) error {
	if strings.TrimSpace(r.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if !r.Type.IsFlow() {
		return &ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	switch r.Frequency {
	case FrequencyMonthly:
		if r.Day < 1 || r.Day > 31 {
			return &ValidationError{Field: "day", Reason: "monthly rules need a day between 1 and 31"}
		}
	case FrequencyWeekly:
		if r.Day < 0 || r.Day > 6 {
			return &ValidationError{Field: "day", Reason: "weekly rules need a weekday between 0 (Monday) and 6 (Sunday)"}
		}
	case FrequencyYearly:
		if r.Day < 1 || r.Day > 31 {
			return &ValidationError{Field: "day", Reason: "yearly rules need a day between 1 and 31"}
		}
		if r.Month == nil || *r.Month < 1 || *r.Month > 12 {
			return &ValidationError{Field: "month", Reason: "yearly rules need a month between 1 and 12"}
		}
	default:
		return &ValidationError{Field: "frequency", Reason: fmt.Sprintf("unknown frequency %q", r.Frequency)}
	}
	return nil
}

// ValidateCategory checks name and type of a category.
func ValidateCategory(c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if !c.Type.IsFlow() {
		return &ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	return nil
}

// ValidateAccount checks the required account fields.
func ValidateAccount(a *Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(a.Type) == "" {
		return &ValidationError{Field: "type", Reason: "required"}
	}
	return nil
}
