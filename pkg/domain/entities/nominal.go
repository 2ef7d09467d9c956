package entities

import (
	"github.com/shopspring/decimal"
)

// Unit is the dispensing unit of a nominal amount
type Unit int

const (
	UnitNull Unit = iota
	Gram
	Milliliter
)

// String method for Unit enum
func (u Unit) String() string {
	switch u {
	case Gram:
		return "gram"
	case Milliliter:
		return "milliliter"
	default:
		return NullValue
	}
}

// NominalRow is the resolved amount for the line item with the same Index.
// ActualsNull marks rows where the prep sheet expects no measurement.
type NominalRow struct {
	Index       int
	Amount      decimal.NullDecimal
	Unit        Unit
	ActualsNull bool
}

// NullNominal returns the row written where nothing is measured
func NullNominal(index int) NominalRow {
	return NominalRow{Index: index, Unit: UnitNull, ActualsNull: true}
}

// NewNominal returns a row holding a resolved amount
func NewNominal(index int, amount decimal.Decimal, unit Unit) NominalRow {
	return NominalRow{Index: index, Amount: decimal.NewNullDecimal(amount), Unit: unit}
}

// AmountString renders the nominal_amount cell
func (n NominalRow) AmountString() string {
	if !n.Amount.Valid {
		return NullValue
	}
	return n.Amount.Decimal.String()
}

// ActualsString renders the actuals column cell
func (n NominalRow) ActualsString() string {
	if n.ActualsNull {
		return NullValue
	}
	return ""
}

// ReagentSpecRow is a line item joined positionally with its nominal row
type ReagentSpecRow struct {
	LineItem
	Nominal NominalRow
}
