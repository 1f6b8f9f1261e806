package models

type TradeType string

const (
	TradeTypeSpot     TradeType = "SPOT"
	TradeTypeContract TradeType = "CONTRACT"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Opposite returns the side that takes liquidity resting on this side.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

type OrderStatus string

const (
	OrderStatusNew           OrderStatus = "NEW"
	OrderStatusPartialFilled OrderStatus = "PARTIAL_FILLED"
	OrderStatusFilled        OrderStatus = "FILLED"
	OrderStatusCanceled      OrderStatus = "CANCELED"
)

// Order is the backend's order entity. The lifecycle is owned entirely by the
// backend; the client only reads snapshots and issues create/cancel commands.
type Order struct {
	OrderID        int         `json:"orderId"`
	SymbolID       string      `json:"symbolId"`
	Side           OrderSide   `json:"side"`
	Type           OrderType   `json:"type"`
	Price          float64     `json:"price"`
	Quantity       float64     `json:"quantity"`
	FilledQuantity float64     `json:"filledQuantity"`
	CumQuoteQty    float64     `json:"cumQuoteQty"`
	Status         OrderStatus `json:"status"`
	TradeType      TradeType   `json:"tradeType"`
	CreatedAt      Timestamp   `json:"createdAt"`
	UpdatedAt      Timestamp   `json:"updatedAt"`
}

// IsOpen reports whether the order can still trade (and be canceled).
func (o Order) IsOpen() bool {
	return o.Status == OrderStatusNew || o.Status == OrderStatusPartialFilled
}

// AvgFillPrice returns cumulative quote quantity over filled quantity.
// The second return value is false when nothing has filled yet.
func (o Order) AvgFillPrice() (float64, bool) {
	if o.FilledQuantity <= 0 {
		return 0, false
	}
	return o.CumQuoteQty / o.FilledQuantity, true
}

// OrderRequest is the create-order payload. Price carries the limit price for
// LIMIT orders and a 0 sentinel for MARKET orders, which the backend ignores.
type OrderRequest struct {
	SymbolID  string    `json:"symbolId"`
	Side      OrderSide `json:"side"`
	TradeType TradeType `json:"tradeType"`
	Type      OrderType `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
}
