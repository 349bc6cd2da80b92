// Package stock holds the row type shown in the ticker table and the
// generator that fabricates rows for it.
package stock

import (
	"fmt"
	"math"
)

const (
	// PriceMin and PriceMax bound the prices produced by the generator.
	PriceMin = -300.0
	PriceMax = 999.999
)

// Stock is a single table row. ID is assigned once and never changes; Price
// is rewritten in place by the refresh loop.
type Stock struct {
	ID     int
	Symbol string
	Name   string
	Price  float64
}

// FormatPrice renders a price the way the table displays it.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.3f", price)
}

// Tone classifies a price for display colouring.
type Tone int

const (
	ToneDown Tone = iota
	ToneUp
	ToneFlat
)

// PriceTone picks a tone from the thousandths of the price: remainder 0 is
// down, 1 is up, 2 is flat.
func PriceTone(price float64) Tone {
	milli := int64(math.Round(math.Abs(price)*1000)) % 1000
	switch milli % 3 {
	case 0:
		return ToneDown
	case 1:
		return ToneUp
	default:
		return ToneFlat
	}
}

// Clone returns a copy of the provided rows.
func Clone(rows []Stock) []Stock {
	dup := make([]Stock, len(rows))
	copy(dup, rows)
	return dup
}
