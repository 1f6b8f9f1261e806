package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

// SupportedCoins fetches the ordered coin identifier list.
func (c *Client) SupportedCoins(ctx context.Context) ([]string, error) {
	var coins []string
	if err := c.get(ctx, "/api/symbols/coins", &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// OrderBook fetches the raw depth snapshot for a symbol.
func (c *Client) OrderBook(ctx context.Context, symbolID string, tradeType models.TradeType) (models.OrderBook, error) {
	var book models.OrderBook
	path := fmt.Sprintf("/api/orders/book/%s?type=%s", url.PathEscape(symbolID), tradeType)
	if err := c.get(ctx, path, &book); err != nil {
		return models.OrderBook{}, err
	}
	return book, nil
}

// Tickers fetches the symbol -> last price map for the dashboard quote board.
func (c *Client) Tickers(ctx context.Context) (map[string]float64, error) {
	var tickers map[string]float64
	if err := c.get(ctx, "/api/symbols/tickers", &tickers); err != nil {
		return nil, err
	}
	return tickers, nil
}

// Candles fetches klines via the backend's upstream proxy. Rows arrive as
// positional arrays [openTimeMs, open, high, low, close, ...] with prices as
// numeric strings; decodeKlineRow rejects anything malformed so bad payloads
// surface here instead of propagating NaNs into normalization.
func (c *Client) Candles(ctx context.Context, symbolID, interval string) ([]marketdata.RawCandle, error) {
	path := fmt.Sprintf("/api/candles/proxy/%s?interval=%s",
		url.PathEscape(strings.ToUpper(symbolID)), url.QueryEscape(interval))

	var rows [][]json.RawMessage
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}

	raw := make([]marketdata.RawCandle, 0, len(rows))
	for i, row := range rows {
		candle, err := decodeKlineRow(row)
		if err != nil {
			return nil, fmt.Errorf("kline row %d: %w", i, err)
		}
		raw = append(raw, candle)
	}
	return raw, nil
}

func decodeKlineRow(row []json.RawMessage) (marketdata.RawCandle, error) {
	if len(row) < 5 {
		return marketdata.RawCandle{}, fmt.Errorf("expected at least 5 fields, got %d", len(row))
	}

	var candle marketdata.RawCandle
	if err := json.Unmarshal(row[0], &candle.OpenTimeMs); err != nil {
		return marketdata.RawCandle{}, fmt.Errorf("open time: %w", err)
	}

	fields := []struct {
		raw  json.RawMessage
		dest *string
		name string
	}{
		{row[1], &candle.Open, "open"},
		{row[2], &candle.High, "high"},
		{row[3], &candle.Low, "low"},
		{row[4], &candle.Close, "close"},
	}
	for _, f := range fields {
		value, err := decodeNumericString(f.raw)
		if err != nil {
			return marketdata.RawCandle{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dest = value
	}
	return candle, nil
}

// decodeNumericString accepts either a JSON string ("42.5") or a bare JSON
// number; the upstream proxy has served both.
func decodeNumericString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("neither string nor number: %s", string(raw))
	}
	return n.String(), nil
}
