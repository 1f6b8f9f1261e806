// Package ui renders the terminal views the session controller pushes into.
package ui

import (
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
	"github.com/quantfold/tradeterm/pkg/session"
)

// Terminal implements every display sink on top of a single writer. The
// controller's poller calls in from its own goroutine, so all rendering is
// serialized behind one mutex.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	format    marketdata.PriceFormat
	hasFormat bool
	candles   []models.Candle
	viewCount int
	inline    map[session.InlineArea]string
}

const chartViewport = 80

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out:       out,
		viewCount: chartViewport,
		inline:    map[session.InlineArea]string{},
	}
}

// Displays bundles the terminal into the sink set the controller expects.
func (t *Terminal) Displays() session.Displays {
	return session.Displays{
		Orders:   t,
		Book:     t,
		Chart:    t,
		Wallets:  t,
		History:  t,
		Tickers:  t,
		Messages: t,
	}
}

func (t *Terminal) newTable(title string) table.Writer {
	w := table.NewWriter()
	w.SetOutputMirror(t.out)
	w.SetTitle(title)
	w.SetStyle(table.StyleRounded)
	return w
}
