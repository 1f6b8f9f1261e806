package exchange

import (
	"context"

	"github.com/quantfold/tradeterm/pkg/models"
)

func (c *Client) Wallets(ctx context.Context) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := c.get(ctx, "/api/wallets", &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

type depositRequest struct {
	CoinID string  `json:"coinId"`
	Amount float64 `json:"amount"`
}

func (c *Client) Deposit(ctx context.Context, coinID string, amount float64) error {
	return c.post(ctx, "/api/wallets/deposit", depositRequest{CoinID: coinID, Amount: amount}, nil)
}

// ResetWallets clears all balances and restores the backend defaults.
func (c *Client) ResetWallets(ctx context.Context) error {
	return c.post(ctx, "/api/wallets/reset", nil, nil)
}

func (c *Client) Transactions(ctx context.Context) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := c.get(ctx, "/api/wallets/transactions", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
