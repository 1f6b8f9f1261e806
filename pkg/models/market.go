package models

// BookLevel is one price level of the order book.
type BookLevel struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// OrderBook is the raw depth snapshot as served by the backend. It is
// replaced wholesale on every fetch and carries no ordering guarantees;
// see marketdata.NormalizeOrderBook for the display form.
type OrderBook struct {
	Asks []BookLevel `json:"asks"`
	Bids []BookLevel `json:"bids"`
}

// Candle is one OHLC bucket. Time is in seconds, already shifted to the
// display zone by the normalizer.
type Candle struct {
	Time  int64
	Open  float64
	High  float64
	Low   float64
	Close float64
}
