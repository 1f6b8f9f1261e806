package exchange

import (
	"context"
	"fmt"

	"github.com/quantfold/tradeterm/pkg/models"
	"github.com/sirupsen/logrus"
)

// MyOrders fetches the member's orders in backend response order.
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/api/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SubmitOrder places an order and returns the acknowledged entity.
func (c *Client) SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"symbol":   order.SymbolID,
		"side":     order.Side,
	}).Info("Order placed")
	return &order, nil
}

// CancelOrder cancels a resting order.
func (c *Client) CancelOrder(ctx context.Context, orderID int) error {
	return c.post(ctx, fmt.Sprintf("/api/orders/%d/cancel", orderID), nil, nil)
}

// TradeFills fetches the member's execution history, newest first.
func (c *Client) TradeFills(ctx context.Context) ([]models.TradeFill, error) {
	var fills []models.TradeFill
	if err := c.get(ctx, "/api/orders/trades", &fills); err != nil {
		return nil, err
	}
	return fills, nil
}
