package session

import (
	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

// The controller never draws anything itself; it pushes normalized data into
// these sinks. pkg/ui implements them for the terminal, tests use recorders.

// OrderSink displays the filtered order list.
type OrderSink interface {
	ShowOrders(orders []models.Order)
}

// BookSink displays a normalized order book.
type BookSink interface {
	ShowBook(view marketdata.BookView)
}

// ChartSink is the candle chart. SetData replaces the series wholesale;
// ResetView re-frames the viewport onto the most recent candles.
type ChartSink interface {
	SetData(candles []models.Candle)
	ApplyOptions(format marketdata.PriceFormat)
	ResetView()
}

// WalletSink displays the merged wallet list, or a load failure in its place.
type WalletSink interface {
	ShowWallets(wallets []models.Wallet)
	ShowError(message string)
}

// HistorySink displays one of the history datasets, or a load failure in its
// place.
type HistorySink interface {
	ShowFunds(entries []models.LedgerEntry)
	ShowFills(fills []models.TradeFill)
	ShowError(message string)
}

// TickerSink displays the dashboard quote board.
type TickerSink interface {
	ShowTickers(tickers map[string]float64)
}

// Messages surfaces user-facing text: inline slots for validation errors and
// a modal-style alert for one-shot notices.
type Messages interface {
	SetInline(area InlineArea, text string)
	ClearInline()
	Alert(text string)
}

// Displays bundles every sink the controller renders into.
type Displays struct {
	Orders   OrderSink
	Book     BookSink
	Chart    ChartSink
	Wallets  WalletSink
	History  HistorySink
	Tickers  TickerSink
	Messages Messages
}
