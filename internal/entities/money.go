package entities

import "github.com/shopspring/decimal"

// MoneyScale is the number of fraction digits kept for every amount.
const MoneyScale = 2

// Money normalizes an amount to cents.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Subtotal is unitPrice × quantity.
func Subtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Money(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// Totals is the result of summing the current items of an order.
type Totals struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
}

// CalculateTotals sums item subtotals and subtracts the discount.
// A discount larger than the gross total is rejected.
func CalculateTotals(items []OrderItem, discount decimal.Decimal) (Totals, error) {
	gross := decimal.Zero
	for _, it := range items {
		gross = gross.Add(it.Subtotal)
	}
	discount = Money(discount)
	net := gross.Sub(discount)
	if net.IsNegative() {
		return Totals{}, Wrap(ErrNegativeTotal, "gross %s, discount %s", gross.StringFixed(MoneyScale), discount.StringFixed(MoneyScale))
	}
	return Totals{Gross: gross, Discount: discount, Net: net}, nil
}
