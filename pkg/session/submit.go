package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/quantfold/tradeterm/pkg/models"
)

// SubmitOrder validates the staged entry fields and places an order of the
// given type for the current workspace symbol and side. Validation failures
// surface a message and never reach the network. On success the quantity
// field (and the price field, for limit orders) is cleared and the dependent
// views refresh.
func (c *Controller) SubmitOrder(ctx context.Context, orderType models.OrderType) {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()

	quantity, err := strconv.ParseFloat(ws.QuantityInput, 64)
	if err != nil || quantity <= 0 {
		c.displays.Messages.Alert("Please enter a valid quantity")
		return
	}

	price := 0.0 // market orders send a 0 sentinel the backend ignores
	if orderType == models.OrderTypeLimit {
		price, err = strconv.ParseFloat(ws.PriceInput, 64)
		if err != nil || price <= 0 {
			c.displays.Messages.Alert("Limit orders require a valid price")
			return
		}
	}

	req := models.OrderRequest{
		SymbolID:  ws.SelectedSymbol,
		Side:      ws.OrderSide,
		TradeType: ws.TradeType,
		Type:      orderType,
		Quantity:  quantity,
		Price:     price,
	}

	order, err := c.gateway.SubmitOrder(ctx, req)
	if err != nil {
		c.displays.Messages.Alert(failureText("Order rejected", err))
		return
	}

	c.displays.Messages.Alert(fmt.Sprintf("Order placed, id %d", order.OrderID))

	c.mu.Lock()
	c.ws.QuantityInput = ""
	if orderType == models.OrderTypeLimit {
		c.ws.PriceInput = ""
	}
	c.mu.Unlock()

	c.refreshOrders(ctx)
	c.refreshBook(ctx)
}

// CancelOrder withdraws a resting order and refreshes the dependent views.
// Only New and PartialFilled orders can still be canceled; a cached order
// past that point is rejected locally. Orders not in the cache are forwarded
// and the backend stays authoritative.
func (c *Controller) CancelOrder(ctx context.Context, orderID int) {
	c.mu.Lock()
	for _, o := range c.ws.CachedOrders {
		if o.OrderID == orderID && !o.IsOpen() {
			c.mu.Unlock()
			c.displays.Messages.Alert("Only open orders can be canceled")
			return
		}
	}
	c.mu.Unlock()

	if err := c.gateway.CancelOrder(ctx, orderID); err != nil {
		c.displays.Messages.Alert(failureText("Cancel failed", err))
		return
	}

	c.displays.Messages.Alert("Order canceled")
	c.refreshOrders(ctx)
	c.refreshBook(ctx)
}
