package marketdata

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/quantfold/tradeterm/pkg/models"
)

// BookDepth is the number of levels shown per side.
const BookDepth = 12

// candleZoneOffset shifts candle times from UTC to the display zone (UTC+8).
const candleZoneOffset = 8 * 3600

// BookView is the display-ready form of an order book snapshot.
//
// Asks are the BookDepth lowest asks in ascending price order. Bids are the
// BookDepth highest bids, also in ascending price order, so the best levels
// of both sides sit adjacent to the book's center.
type BookView struct {
	Asks []models.BookLevel
	Bids []models.BookLevel
}

// BestAsk is the lowest ask price. ok is false when the side is empty.
func (v BookView) BestAsk() (float64, bool) {
	if len(v.Asks) == 0 {
		return 0, false
	}
	return v.Asks[0].Price, true
}

// BestBid is the highest bid price. ok is false when the side is empty.
func (v BookView) BestBid() (float64, bool) {
	if len(v.Bids) == 0 {
		return 0, false
	}
	return v.Bids[len(v.Bids)-1].Price, true
}

// NormalizeOrderBook turns a raw depth snapshot into a BookView.
//
// Bids are sorted descending and truncated before the final ascending sort:
// truncating an ascending sequence would keep the *lowest* bids, which is the
// wrong end of the book.
func NormalizeOrderBook(raw models.OrderBook) BookView {
	asks := make([]models.BookLevel, len(raw.Asks))
	copy(asks, raw.Asks)
	sort.Slice(asks, func(i, j int) bool { return asks[i].Price < asks[j].Price })
	if len(asks) > BookDepth {
		asks = asks[:BookDepth]
	}

	bids := make([]models.BookLevel, len(raw.Bids))
	copy(bids, raw.Bids)
	sort.Slice(bids, func(i, j int) bool { return bids[i].Price > bids[j].Price })
	if len(bids) > BookDepth {
		bids = bids[:BookDepth]
	}
	sort.Slice(bids, func(i, j int) bool { return bids[i].Price < bids[j].Price })

	return BookView{Asks: asks, Bids: bids}
}

// RawCandle is one positional kline row as decoded at the gateway boundary:
// millisecond open time followed by OHLC values as numeric strings.
type RawCandle struct {
	OpenTimeMs int64
	Open       string
	High       string
	Low        string
	Close      string
}

// NormalizeCandles converts raw kline rows into chart candles: prices parsed
// to floats, times re-based to seconds in the display zone, rows sorted by
// time. An empty input or an unparsable row is an error so the caller can
// fall back to synthetic data instead of feeding NaNs to the chart.
func NormalizeCandles(raw []RawCandle) ([]models.Candle, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty candle payload")
	}

	candles := make([]models.Candle, 0, len(raw))
	for i, row := range raw {
		c := models.Candle{Time: row.OpenTimeMs/1000 + candleZoneOffset}
		var err error
		if c.Open, err = strconv.ParseFloat(row.Open, 64); err != nil {
			return nil, fmt.Errorf("candle %d: bad open %q", i, row.Open)
		}
		if c.High, err = strconv.ParseFloat(row.High, 64); err != nil {
			return nil, fmt.Errorf("candle %d: bad high %q", i, row.High)
		}
		if c.Low, err = strconv.ParseFloat(row.Low, 64); err != nil {
			return nil, fmt.Errorf("candle %d: bad low %q", i, row.Low)
		}
		if c.Close, err = strconv.ParseFloat(row.Close, 64); err != nil {
			return nil, fmt.Errorf("candle %d: bad close %q", i, row.Close)
		}
		candles = append(candles, c)
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return candles, nil
}

// PriceFormat controls how the chart renders prices.
type PriceFormat struct {
	Precision int
	MinMove   float64
}

// PriceFormatFor picks the price format from the last close price. Cheap
// coins need more decimals; expensive ones keep the two-decimal default.
// Recomputed on every successful candle fetch, never cached.
func PriceFormatFor(lastClose float64) PriceFormat {
	switch {
	case lastClose < 1:
		return PriceFormat{Precision: 6, MinMove: 0.000001}
	case lastClose < 10:
		return PriceFormat{Precision: 4, MinMove: 0.0001}
	case lastClose > 1000:
		// Same as the default tier; kept distinct to mirror the tier table.
		return PriceFormat{Precision: 2, MinMove: 0.01}
	default:
		return PriceFormat{Precision: 2, MinMove: 0.01}
	}
}
