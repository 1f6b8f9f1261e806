package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

// defaultSymbol backs the chart before any symbol has been selected.
const defaultSymbol = "BTCUSDT"

// SetTradeType switches the market segment. Contract trading exists in the
// type system but is disabled, so it coerces to spot with a warning. The
// symbol option list is rebuilt, the previous selection kept when still
// valid, the dependent views refreshed once, and polling restarted.
func (c *Controller) SetTradeType(ctx context.Context, tradeType models.TradeType) {
	if tradeType == models.TradeTypeContract {
		c.logger.Warn("Contract trading is disabled, staying on spot")
		tradeType = models.TradeTypeSpot
	}

	c.mu.Lock()
	c.ws.TradeType = tradeType
	c.ws.SymbolOptions = BuildSymbolOptions(c.coins, c.opts.QuoteCurrency)
	if _, ok := c.ws.findOption(c.ws.SelectedSymbol); !ok {
		if len(c.ws.SymbolOptions) > 0 {
			c.ws.SelectedSymbol = c.ws.SymbolOptions[0].Value
		} else {
			c.ws.SelectedSymbol = ""
		}
	}
	c.mu.Unlock()

	c.refreshOrders(ctx)
	c.refreshBook(ctx)
	c.refreshCandles(ctx, true)

	c.logger.WithField("trade_type", tradeType).Debug("Starting market data polling")
	c.scheduler.Start(c.opts.PollInterval, func() error {
		tick := context.Background()
		return errors.Join(c.refreshBook(tick), c.refreshCandles(tick, false))
	})
}

// SelectSymbol changes the active pair and refreshes orders, book, and
// candles with a viewport reset.
func (c *Controller) SelectSymbol(ctx context.Context, value string) {
	c.mu.Lock()
	if _, ok := c.ws.findOption(value); !ok {
		c.mu.Unlock()
		c.logger.WithField("symbol", value).Warn("Ignoring unknown symbol")
		return
	}
	c.ws.SelectedSymbol = value
	c.mu.Unlock()

	c.refreshOrders(ctx)
	c.refreshBook(ctx)
	c.refreshCandles(ctx, true)
}

// SetOrderSide flips the order ticket between buy and sell.
func (c *Controller) SetOrderSide(side models.OrderSide) {
	c.mu.Lock()
	c.ws.OrderSide = side
	c.mu.Unlock()
}

// SetOrderStatusFilter re-renders the cached orders; no fetch is needed.
func (c *Controller) SetOrderStatusFilter(filter StatusFilter) {
	c.mu.Lock()
	c.ws.OrderStatusFilter = filter
	c.mu.Unlock()
	c.renderOrders()
}

// SwitchHistoryTab fetches the selected history dataset; unlike the status
// filter, this data is not pre-cached.
func (c *Controller) SwitchHistoryTab(ctx context.Context, tab HistoryTab) {
	c.mu.Lock()
	c.ws.HistoryTab = tab
	c.mu.Unlock()

	switch tab {
	case TabFunds:
		entries, err := c.gateway.Transactions(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("Funds ledger fetch failed")
			c.displays.History.ShowError("Failed to load funds history")
			return
		}
		c.displays.History.ShowFunds(entries)
	case TabTrades:
		fills, err := c.gateway.TradeFills(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("Trade fill fetch failed")
			c.displays.History.ShowError("Failed to load trade history")
			return
		}
		spot := make([]models.TradeFill, 0, len(fills))
		for _, fill := range fills {
			if fill.TradeType == models.TradeTypeSpot {
				spot = append(spot, fill)
			}
		}
		c.displays.History.ShowFills(spot)
	}
}

// SetChartInterval switches the candle timeframe and reloads the series
// with a viewport reset.
func (c *Controller) SetChartInterval(ctx context.Context, interval string) {
	c.mu.Lock()
	c.ws.ChartInterval = interval
	c.mu.Unlock()
	c.refreshCandles(ctx, true)
}

// SetPriceInput and SetQuantityInput stage the order ticket entry fields.
func (c *Controller) SetPriceInput(value string) {
	c.mu.Lock()
	c.ws.PriceInput = value
	c.mu.Unlock()
}

func (c *Controller) SetQuantityInput(value string) {
	c.mu.Lock()
	c.ws.QuantityInput = value
	c.mu.Unlock()
}

// PickBookLevel pre-fills the order ticket from a displayed book level: the
// level's price becomes the limit price and the side flips to take the
// resting liquidity.
func (c *Controller) PickBookLevel(price float64, restingSide models.OrderSide) {
	c.mu.Lock()
	c.ws.PriceInput = strconv.FormatFloat(price, 'f', -1, 64)
	c.ws.OrderSide = restingSide.Opposite()
	c.mu.Unlock()
}

func (c *Controller) renderOrders() {
	c.mu.Lock()
	filtered := FilterOrders(c.ws.CachedOrders, c.ws.TradeType, c.ws.OrderStatusFilter)
	c.mu.Unlock()
	c.displays.Orders.ShowOrders(filtered)
}

func (c *Controller) refreshOrders(ctx context.Context) error {
	orders, err := c.gateway.MyOrders(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Order fetch failed")
		return err
	}

	c.mu.Lock()
	if c.mode != ModeTrading {
		// The trading view went away while the request was in flight.
		c.mu.Unlock()
		return nil
	}
	c.ws.CachedOrders = orders
	c.mu.Unlock()

	c.renderOrders()
	return nil
}

func (c *Controller) refreshBook(ctx context.Context) error {
	c.mu.Lock()
	symbol := c.ws.SelectedSymbol
	tradeType := c.ws.TradeType
	c.mu.Unlock()
	if symbol == "" {
		return nil
	}

	book, err := c.gateway.OrderBook(ctx, symbol, tradeType)
	if err != nil {
		c.logger.WithError(err).Debug("Order book fetch failed")
		return err
	}
	view := marketdata.NormalizeOrderBook(book)

	c.mu.Lock()
	stale := c.mode != ModeTrading || c.ws.SelectedSymbol != symbol
	c.mu.Unlock()
	if stale {
		return nil
	}

	c.displays.Book.ShowBook(view)
	return nil
}

func (c *Controller) refreshCandles(ctx context.Context, resetView bool) error {
	c.mu.Lock()
	selected := c.ws.SelectedSymbol
	interval := c.ws.ChartInterval
	c.mu.Unlock()

	symbol := selected
	if symbol == "" {
		symbol = defaultSymbol
	}

	var candles []models.Candle
	raw, err := c.gateway.Candles(ctx, symbol, interval)
	if err == nil {
		candles, err = marketdata.NormalizeCandles(raw)
	}

	applyFormat := err == nil
	if err != nil {
		c.logger.WithError(err).Warn("Candle fetch failed, using synthetic data")
		candles = marketdata.SyntheticCandles(time.Now())
	}

	c.mu.Lock()
	stale := c.mode != ModeTrading || c.ws.SelectedSymbol != selected
	c.mu.Unlock()
	if stale {
		return nil
	}

	if applyFormat {
		last := candles[len(candles)-1]
		c.displays.Chart.ApplyOptions(marketdata.PriceFormatFor(last.Close))
	}
	c.displays.Chart.SetData(candles)
	if resetView {
		c.displays.Chart.ResetView()
	}
	return nil
}
