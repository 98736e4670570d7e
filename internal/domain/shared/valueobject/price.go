package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/money/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	CZK Currency = "CZK"
	GBP Currency = "GBP"
	CNY Currency = "CNY"
)

// DefaultCurrency is used when nothing else is configured
const DefaultCurrency = USD

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ParseCurrency normalizes and validates a three letter currency code
func ParseCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !currencyPattern.MatchString(c) {
		return "", shared.NewValidationError(fmt.Sprintf("invalid currency code %q", code))
	}
	return Currency(c), nil
}

// Price is an immutable amount of money in one currency.
// Arithmetic between prices requires equal currencies.
type Price struct {
	amount   decimal.Decimal
	currency Currency
}

// NewPrice creates a price with the given amount and currency
func NewPrice(amount decimal.Decimal, currency Currency) (Price, error) {
	if currency == "" {
		return Price{}, shared.NewValidationError("currency cannot be empty")
	}
	return Price{amount: amount, currency: currency}, nil
}

// NewPriceFromString creates a price from a decimal string such as "12.50"
func NewPriceFromString(amount string, currency Currency) (Price, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Price{}, shared.NewValidationError(fmt.Sprintf("invalid amount %q", amount))
	}
	return NewPrice(d, currency)
}

// MustPrice creates a price from a decimal string and panics on bad input.
// Intended for constants and tests.
func MustPrice(amount string, currency Currency) Price {
	p, err := NewPriceFromString(amount, currency)
	if err != nil {
		panic(err)
	}
	return p
}

// Zero returns the additive identity for the given currency
func Zero(currency Currency) Price {
	return Price{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (p Price) Amount() decimal.Decimal {
	return p.amount
}

// Currency returns the currency code
func (p Price) Currency() Currency {
	return p.currency
}

func (p Price) IsZero() bool {
	return p.amount.IsZero()
}

func (p Price) IsPositive() bool {
	return p.amount.IsPositive()
}

func (p Price) IsNegative() bool {
	return p.amount.IsNegative()
}

func (p Price) sameCurrency(op string, other Price) error {
	if p.currency != other.currency {
		return shared.NewDomainError(shared.CodeCurrencyMismatch,
			fmt.Sprintf("cannot %s %s and %s", op, p.currency, other.currency))
	}
	return nil
}

// Add returns the sum of both prices.
// Returns ErrCurrencyMismatch if currencies differ.
func (p Price) Add(other Price) (Price, error) {
	if err := p.sameCurrency("add", other); err != nil {
		return Price{}, err
	}
	return Price{amount: p.amount.Add(other.amount), currency: p.currency}, nil
}

// Subtract returns the difference of both prices.
// Returns ErrCurrencyMismatch if currencies differ.
func (p Price) Subtract(other Price) (Price, error) {
	if err := p.sameCurrency("subtract", other); err != nil {
		return Price{}, err
	}
	return Price{amount: p.amount.Sub(other.amount), currency: p.currency}, nil
}

// Multiply returns the price multiplied by the given factor
func (p Price) Multiply(factor decimal.Decimal) Price {
	return Price{amount: p.amount.Mul(factor), currency: p.currency}
}

// Negate returns the price with the sign reversed
func (p Price) Negate() Price {
	return Price{amount: p.amount.Neg(), currency: p.currency}
}

// Equals returns true if amount and currency are equal.
// 12.5 and 12.50 are equal.
func (p Price) Equals(other Price) bool {
	return p.currency == other.currency && p.amount.Equal(other.amount)
}

// Compare returns -1, 0 or +1.
// Returns ErrCurrencyMismatch if currencies differ.
func (p Price) Compare(other Price) (int, error) {
	if err := p.sameCurrency("compare", other); err != nil {
		return 0, err
	}
	return p.amount.Cmp(other.amount), nil
}

func (p Price) LessThan(other Price) (bool, error) {
	c, err := p.Compare(other)
	return c < 0, err
}

func (p Price) GreaterThan(other Price) (bool, error) {
	c, err := p.Compare(other)
	return c > 0, err
}

// String returns e.g. "12.50 USD"
func (p Price) String() string {
	return fmt.Sprintf("%s %s", p.amount.StringFixed(2), p.currency)
}

type priceJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceJSON{Amount: p.amount.String(), Currency: p.currency})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Price) UnmarshalJSON(data []byte) error {
	var v priceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	currency, err := ParseCurrency(string(v.Currency))
	if err != nil {
		return err
	}
	p.amount = amount
	p.currency = currency
	return nil
}

// Value implements driver.Valuer. Only the amount is stored; read models
// keep the currency in a separate column.
func (p Price) Value() (driver.Value, error) {
	return p.amount.String(), nil
}

// PriceFactory creates prices in a configured default currency
type PriceFactory struct {
	currency Currency
}

// NewPriceFactory creates a factory for the given currency.
// An empty currency falls back to DefaultCurrency.
func NewPriceFactory(currency Currency) PriceFactory {
	if currency == "" {
		currency = DefaultCurrency
	}
	return PriceFactory{currency: currency}
}

// Currency returns the factory's currency
func (f PriceFactory) Currency() Currency {
	return f.currency
}

// Create returns a price of the given amount in the factory currency
func (f PriceFactory) Create(amount decimal.Decimal) Price {
	return Price{amount: amount, currency: f.currency}
}

// Zero returns the zero price in the factory currency
func (f PriceFactory) Zero() Price {
	return Zero(f.currency)
}

// Sum adds all prices, starting from zero in the currency of the first price
// (or the factory currency when empty). Mixed currencies fail with
// ErrCurrencyMismatch.
func (f PriceFactory) Sum(prices ...Price) (Price, error) {
	total := f.Zero()
	if len(prices) > 0 {
		total = Zero(prices[0].currency)
	}
	for _, p := range prices {
		var err error
		if total, err = total.Add(p); err != nil {
			return Price{}, err
		}
	}
	return total, nil
}
