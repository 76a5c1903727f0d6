package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	SAR Currency = "SAR" // Saudi Riyal
	USD Currency = "USD"
)

// DefaultCurrency is the only currency the office books in
const DefaultCurrency = SAR

var moneyPrinter = message.NewPrinter(language.English)

// Money is an immutable monetary amount
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// SARFrom wraps a decimal amount in the default currency
func SARFrom(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: SAR}
}

// NewMoneyFromString parses an amount string in the default currency
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return SARFrom(d), nil
}

// Zero returns a zero amount in the default currency
func Zero() Money {
	return Money{amount: decimal.Zero, currency: DefaultCurrency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }

// Currency returns the currency code, falling back to the default
func (m Money) Currency() Currency {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

// Add returns the sum of both amounts
func (m Money) Add(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.Currency(), other.Currency())
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}, nil
}

// Subtract returns the difference of both amounts
func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency() != other.Currency() {
		return Money{}, fmt.Errorf("cannot subtract money with different currencies: %s and %s", m.Currency(), other.Currency())
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.Currency()}, nil
}

// Equals returns true for equal amounts in the same currency
func (m Money) Equals(other Money) bool {
	return m.Currency() == other.Currency() && m.amount.Equal(other.amount)
}

// String returns e.g. "1234.50 SAR"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.Currency())
}

// Format renders the amount for display with thousands separators and two
// decimals, e.g. "SAR 1,234.50".
func (m Money) Format() string {
	return FormatAmount(m.amount, m.Currency())
}

// FormatSAR is a shortcut for formatting a bare decimal in riyals
func FormatSAR(amount decimal.Decimal) string {
	return FormatAmount(amount, SAR)
}

// FormatAmount formats a decimal in the given currency. Digits come from the
// decimal itself; the printer only groups the whole part.
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	rounded := amount.Round(2)
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = moneyPrinter.Sprintf("%d", n)
	}
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s.%s", currency, sign, whole, frac)
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}{
		Amount:   m.amount.StringFixed(2),
		Currency: m.Currency(),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   string   `json:"amount"`
		Currency Currency `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}

// Value implements driver.Valuer; only the amount is stored
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	case float64:
		m.amount = decimal.NewFromFloat(v)
		m.currency = DefaultCurrency
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}
