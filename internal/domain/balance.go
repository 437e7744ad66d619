package domain

import "github.com/shopspring/decimal"

// DeriveBalance is the account balance formula: initial + incoming - outgoing.
func DeriveBalance(initial, incoming, outgoing decimal.Decimal) decimal.Decimal {
	return initial.Add(incoming).Sub(outgoing)
}

// NetEffect is the change a confirmed transaction makes to the user's
// total balance. Transfers move money between the user's own accounts.
func NetEffect(tx Transaction) decimal.Decimal {
	if tx.State != StateConfirmed {
		return decimal.Zero
	}
	switch tx.Type {
	case TypeIncome:
		return tx.Amount
	case TypeExpense:
		return tx.Amount.Neg()
	}
	return decimal.Zero
}

// RoundMoney rounds an amount to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
