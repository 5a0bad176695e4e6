package currency

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// RateSource supplies exchange rates. *Client implements it.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Conversion is the outcome of converting one amount.
type Conversion struct {
	Amount           decimal.Decimal // in the target currency
	Rate             decimal.Decimal
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
}

// Converter converts amounts, consulting its cache before the rate source.
type Converter struct {
	source RateSource
	cache  *RateCache
}

// NewConverter creates a converter that owns cache.
func NewConverter(source RateSource, cache *RateCache) *Converter {
	return &Converter{source: source, cache: cache}
}

// Convert turns amount in from into the to currency. Converting to the same
// currency returns the amount unchanged at rate 1 without a lookup.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Conversion, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	conv := Conversion{OriginalAmount: amount, OriginalCurrency: from}
	if from == to {
		conv.Amount = amount
		conv.Rate = decimal.NewFromInt(1)
		return conv, nil
	}

	rate, ok := c.cache.Get(from, to)
	if !ok {
		var err error
		rate, err = c.source.Rate(ctx, from, to)
		if err != nil {
			return Conversion{}, fmt.Errorf("failed to get %s to %s rate: %w", from, to, err)
		}
		c.cache.Put(from, to, rate)
		slog.Debug("Fetched conversion rate", "from", from, "to", to, "rate", rate.String())
	}

	conv.Rate = rate
	conv.Amount = amount.Mul(rate)
	return conv, nil
}
