package ui

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

func (t *Terminal) ShowOrders(orders []models.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.newTable("ORDERS")
	w.AppendHeader(table.Row{"ID", "Symbol", "Side", "Type", "Price", "Qty", "Filled", "Avg Fill", "Status", "Created"})

	for _, o := range orders {
		avg := "-"
		if price, ok := o.AvgFillPrice(); ok {
			avg = t.formatPriceLocked(price)
		}
		price := t.formatPriceLocked(o.Price)
		if o.Type == models.OrderTypeMarket {
			price = "MKT"
		}
		w.AppendRow(table.Row{
			o.OrderID, o.SymbolID, o.Side, o.Type,
			price,
			strconv.FormatFloat(o.Quantity, 'f', -1, 64),
			strconv.FormatFloat(o.FilledQuantity, 'f', -1, 64),
			avg, o.Status,
			o.CreatedAt.Format("01-02 15:04:05"),
		})
	}
	if len(orders) == 0 {
		w.AppendRow(table.Row{"", "no orders", "", "", "", "", "", "", "", ""})
	}
	w.Render()
}

func (t *Terminal) ShowBook(view marketdata.BookView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.newTable("ORDER BOOK")
	w.AppendHeader(table.Row{"Side", "Price", "Qty"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	// Asks render high to low so the spread sits in the middle of the table.
	for i := len(view.Asks) - 1; i >= 0; i-- {
		level := view.Asks[i]
		w.AppendRow(table.Row{"ASK", t.formatPriceLocked(level.Price), level.Quantity})
	}
	w.AppendSeparator()
	for i := len(view.Bids) - 1; i >= 0; i-- {
		level := view.Bids[i]
		w.AppendRow(table.Row{"BID", t.formatPriceLocked(level.Price), level.Quantity})
	}
	w.Render()

	if ask, ok := view.BestAsk(); ok {
		fmt.Fprintf(t.out, "best ask %s", t.formatPriceLocked(ask))
		if bid, ok := view.BestBid(); ok {
			fmt.Fprintf(t.out, "  best bid %s", t.formatPriceLocked(bid))
		}
		fmt.Fprintln(t.out)
	}
}

func (t *Terminal) ShowWallets(wallets []models.Wallet) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.newTable("WALLETS")
	w.AppendHeader(table.Row{"Coin", "Balance", "Available", "Frozen"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, wallet := range wallets {
		w.AppendRow(table.Row{
			wallet.CoinID,
			strconv.FormatFloat(wallet.Balance, 'f', -1, 64),
			strconv.FormatFloat(wallet.Available, 'f', -1, 64),
			strconv.FormatFloat(wallet.Frozen(), 'f', -1, 64),
		})
	}
	w.Render()
}

func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "! %s\n", message)
}

func (t *Terminal) ShowFunds(entries []models.LedgerEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.newTable("FUNDS HISTORY")
	w.AppendHeader(table.Row{"Time", "Coin", "Type", "Amount"})
	for _, e := range entries {
		w.AppendRow(table.Row{
			e.CreatedAt.Format("01-02 15:04:05"),
			e.CoinID, e.Type,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
		})
	}
	w.Render()
}

func (t *Terminal) ShowFills(fills []models.TradeFill) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.newTable("TRADE HISTORY")
	w.AppendHeader(table.Row{"Time", "Symbol", "Side", "Price", "Qty", "Role"})
	for _, f := range fills {
		w.AppendRow(table.Row{
			f.ExecutedAt.Format("01-02 15:04:05"),
			f.SymbolID, f.Side,
			t.formatPriceLocked(f.Price),
			strconv.FormatFloat(f.Quantity, 'f', -1, 64),
			f.Role,
		})
	}
	w.Render()
}

func (t *Terminal) ShowTickers(tickers map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	symbols := make([]string, 0, len(tickers))
	for symbol := range tickers {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	w := t.newTable("MARKETS")
	w.AppendHeader(table.Row{"Symbol", "Last"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	for _, symbol := range symbols {
		w.AppendRow(table.Row{symbol, strconv.FormatFloat(tickers[symbol], 'f', -1, 64)})
	}
	w.Render()
}

// formatPriceLocked renders a price at the active chart precision. Callers
// hold t.mu.
func (t *Terminal) formatPriceLocked(price float64) string {
	if !t.hasFormat {
		return strconv.FormatFloat(price, 'f', -1, 64)
	}
	return strconv.FormatFloat(price, 'f', t.format.Precision, 64)
}
