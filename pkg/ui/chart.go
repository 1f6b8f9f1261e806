package ui

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

// SetData replaces the candle series and redraws the chart panel.
func (t *Terminal) SetData(candles []models.Candle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.candles = candles
	t.renderChartLocked()
}

// ApplyOptions sets the price precision used across the chart and the
// price-bearing tables.
func (t *Terminal) ApplyOptions(format marketdata.PriceFormat) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.format = format
	t.hasFormat = true
}

// ResetView re-frames the viewport onto the most recent candles.
func (t *Terminal) ResetView() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.viewCount = chartViewport
	t.renderChartLocked()
}

func (t *Terminal) renderChartLocked() {
	candles := t.candles
	if len(candles) > t.viewCount {
		candles = candles[len(candles)-t.viewCount:]
	}
	if len(candles) == 0 {
		return
	}

	w := t.newTable("CHART")
	w.AppendHeader(table.Row{"Time", "Open", "High", "Low", "Close", ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	lo, hi := candles[0].Low, candles[0].High
	for _, c := range candles {
		if c.Low < lo {
			lo = c.Low
		}
		if c.High > hi {
			hi = c.High
		}
	}

	for _, c := range candles {
		w.AppendRow(table.Row{
			time.Unix(c.Time, 0).UTC().Format("01-02 15:04"),
			t.formatPriceLocked(c.Open),
			t.formatPriceLocked(c.High),
			t.formatPriceLocked(c.Low),
			t.formatPriceLocked(c.Close),
			sparkBar(c, lo, hi),
		})
	}
	w.Render()
}

// sparkBar draws the candle's range as a fixed-width strip so the series
// reads as a rough chart in a plain table.
func sparkBar(c models.Candle, lo, hi float64) string {
	const width = 24
	span := hi - lo
	if span <= 0 {
		return ""
	}
	scale := func(v float64) int {
		pos := int(float64(width-1) * (v - lo) / span)
		if pos < 0 {
			pos = 0
		}
		if pos > width-1 {
			pos = width - 1
		}
		return pos
	}

	bar := make([]rune, width)
	for i := range bar {
		bar[i] = ' '
	}
	for i := scale(c.Low); i <= scale(c.High); i++ {
		bar[i] = '-'
	}
	body := '░'
	if c.Close >= c.Open {
		body = '█'
	}
	start, end := scale(c.Open), scale(c.Close)
	if start > end {
		start, end = end, start
	}
	for i := start; i <= end; i++ {
		bar[i] = body
	}
	return string(bar)
}
