package session

import "github.com/quantfold/tradeterm/pkg/models"

// SymbolOption is one tradable pair derived from the supported coin set.
type SymbolOption struct {
	Value string // e.g. "BTCUSDT"
	Label string // e.g. "BTC"
}

// Workspace holds the trading view's state. It is owned by the Controller;
// all mutation flows through controller methods.
type Workspace struct {
	TradeType         models.TradeType
	SelectedSymbol    string
	OrderSide         models.OrderSide
	OrderStatusFilter StatusFilter
	HistoryTab        HistoryTab
	ChartInterval     string

	// Entry fields for the order ticket. Cleared on successful submission.
	PriceInput    string
	QuantityInput string

	SymbolOptions []SymbolOption
	CachedOrders  []models.Order
}

func newWorkspace(chartInterval string) Workspace {
	return Workspace{
		TradeType:         models.TradeTypeSpot,
		OrderSide:         models.OrderSideBuy,
		OrderStatusFilter: FilterAll,
		HistoryTab:        TabFunds,
		ChartInterval:     chartInterval,
	}
}

// BuildSymbolOptions derives one option per supported coin, quoted against
// the quote currency, which is itself excluded.
func BuildSymbolOptions(coins []string, quoteCurrency string) []SymbolOption {
	options := make([]SymbolOption, 0, len(coins))
	for _, coin := range coins {
		if coin == quoteCurrency {
			continue
		}
		options = append(options, SymbolOption{Value: coin + quoteCurrency, Label: coin})
	}
	return options
}

// FilterOrders keeps orders of the given trade type (legacy orders without
// one count as spot) and applies the status filter.
func FilterOrders(orders []models.Order, tradeType models.TradeType, filter StatusFilter) []models.Order {
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		oType := o.TradeType
		if oType == "" {
			oType = models.TradeTypeSpot
		}
		if oType != tradeType {
			continue
		}

		switch filter {
		case FilterOpen:
			if !o.IsOpen() {
				continue
			}
		case FilterFilled:
			if o.Status != models.OrderStatusFilled {
				continue
			}
		case FilterCanceled:
			if o.Status != models.OrderStatusCanceled {
				continue
			}
		}
		filtered = append(filtered, o)
	}
	return filtered
}

func (w *Workspace) findOption(value string) (SymbolOption, bool) {
	for _, opt := range w.SymbolOptions {
		if opt.Value == value {
			return opt, true
		}
	}
	return SymbolOption{}, false
}
