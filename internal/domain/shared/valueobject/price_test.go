package valueobject

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/money/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	t.Run("creates price with amount and currency", func(t *testing.T) {
		p, err := NewPrice(decimal.RequireFromString("10.00"), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, p.Currency())
		assert.True(t, p.Amount().Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewPrice(decimal.NewFromInt(1), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects malformed amount string", func(t *testing.T) {
		_, err := NewPriceFromString("ten", USD)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, EUR, c)

	for _, bad := range []string{"", "EU", "EURO", "12A"} {
		_, err := ParseCurrency(bad)
		assert.Error(t, err, bad)
	}
}

func TestPrice_Add(t *testing.T) {
	t.Run("same currency sums amounts", func(t *testing.T) {
		sum, err := MustPrice("10.00", USD).Add(MustPrice("2.50", USD))
		require.NoError(t, err)
		assert.True(t, sum.Equals(MustPrice("12.50", USD)))
		assert.Equal(t, USD, sum.Currency())
	})

	t.Run("zero is the additive identity", func(t *testing.T) {
		p := MustPrice("7.25", EUR)
		sum, err := Zero(EUR).Add(p)
		require.NoError(t, err)
		assert.True(t, sum.Equals(p))
	})

	t.Run("mismatched currency fails", func(t *testing.T) {
		_, err := MustPrice("1", USD).Add(MustPrice("1", EUR))
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrCurrencyMismatch))
	})
}

func TestPrice_Subtract(t *testing.T) {
	diff, err := MustPrice("12.50", USD).Subtract(MustPrice("10", USD))
	require.NoError(t, err)
	assert.Equal(t, "2.50 USD", diff.String())

	_, err = MustPrice("1", USD).Subtract(MustPrice("1", CZK))
	assert.True(t, errors.Is(err, shared.ErrCurrencyMismatch))
}

func TestPrice_Compare(t *testing.T) {
	less, err := MustPrice("1", USD).LessThan(MustPrice("2", USD))
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := MustPrice("1", USD).GreaterThan(MustPrice("2", USD))
	require.NoError(t, err)
	assert.False(t, greater)

	_, err = MustPrice("1", USD).Compare(MustPrice("1", GBP))
	assert.True(t, errors.Is(err, shared.ErrCurrencyMismatch))
}

func TestPrice_Predicates(t *testing.T) {
	assert.True(t, Zero(USD).IsZero())
	assert.True(t, MustPrice("0.01", USD).IsPositive())
	assert.True(t, MustPrice("3", USD).Negate().IsNegative())
	assert.True(t, MustPrice("3", USD).Multiply(decimal.NewFromInt(2)).Equals(MustPrice("6", USD)))
}

func TestPrice_Equals(t *testing.T) {
	assert.True(t, MustPrice("12.5", USD).Equals(MustPrice("12.50", USD)))
	assert.False(t, MustPrice("12.5", USD).Equals(MustPrice("12.5", EUR)))
}

func TestPrice_JSON(t *testing.T) {
	data, err := json.Marshal(MustPrice("12.50", USD))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.5","currency":"USD"}`, string(data))

	var p Price
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"5.00","currency":"EUR"}`), &p))
	assert.True(t, p.Equals(MustPrice("5", EUR)))

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"x","currency":"EUR"}`), &p))

	t.Run("rejects missing or malformed currency", func(t *testing.T) {
		for _, payload := range []string{
			`{"amount":"5.00"}`,
			`{"amount":"5.00","currency":""}`,
			`{"amount":"5.00","currency":"EURO"}`,
			`{"amount":"5.00","currency":"E1R"}`,
		} {
			var got Price
			err := json.Unmarshal([]byte(payload), &got)
			require.Error(t, err, payload)
			assert.True(t, errors.Is(err, shared.ErrValidation), payload)
			assert.True(t, got.Equals(Price{}), "a rejected payload leaves the price unset")
		}
	})

	t.Run("normalizes currency case", func(t *testing.T) {
		var got Price
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"5","currency":"eur"}`), &got))
		assert.Equal(t, EUR, got.Currency())
	})
}

func TestPriceFactory(t *testing.T) {
	t.Run("defaults currency", func(t *testing.T) {
		f := NewPriceFactory("")
		assert.Equal(t, DefaultCurrency, f.Currency())
		assert.True(t, f.Zero().IsZero())
	})

	t.Run("creates in configured currency", func(t *testing.T) {
		f := NewPriceFactory(CZK)
		p := f.Create(decimal.NewFromInt(100))
		assert.Equal(t, CZK, p.Currency())
	})

	t.Run("sum of empty list is zero in factory currency", func(t *testing.T) {
		total, err := NewPriceFactory(EUR).Sum()
		require.NoError(t, err)
		assert.True(t, total.Equals(Zero(EUR)))
	})

	t.Run("sum uses the currency of the prices", func(t *testing.T) {
		total, err := NewPriceFactory(USD).Sum(MustPrice("5", EUR), MustPrice("2.5", EUR))
		require.NoError(t, err)
		assert.True(t, total.Equals(MustPrice("7.5", EUR)))
	})

	t.Run("sum of mixed currencies fails", func(t *testing.T) {
		_, err := NewPriceFactory(USD).Sum(MustPrice("5", EUR), MustPrice("1", USD))
		assert.True(t, errors.Is(err, shared.ErrCurrencyMismatch))
	})
}
