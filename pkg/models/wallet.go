package models

// Wallet is one coin balance. Available excludes amounts frozen by resting
// orders.
type Wallet struct {
	CoinID    string  `json:"coinId"`
	Balance   float64 `json:"balance"`
	Available float64 `json:"available"`
}

// Frozen is the portion of the balance locked by open orders.
func (w Wallet) Frozen() float64 {
	return w.Balance - w.Available
}

// LedgerEntry is one row of the funds ledger (deposits, trade settlements,
// freezes and releases).
type LedgerEntry struct {
	ID        int64     `json:"id"`
	CoinID    string    `json:"coinId"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	CreatedAt Timestamp `json:"createdAt"`
}

// TradeFill is one execution from the member's trade history. Role records
// whether the member was the taker or the maker of the fill.
type TradeFill struct {
	TradeID    int       `json:"tradeId"`
	SymbolID   string    `json:"symbolId"`
	Side       OrderSide `json:"side"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	ExecutedAt Timestamp `json:"executedAt"`
	TradeType  TradeType `json:"tradeType"`
	Role       string    `json:"role"`
}
