package session

import (
	"context"
	"sort"
	"strconv"

	"github.com/quantfold/tradeterm/pkg/models"
)

// MergeWallets rebuilds the wallet list around the supported coin set:
// every supported coin appears exactly once, with a zero-balance virtual
// wallet standing in for coins the backend has no row for.
func MergeWallets(coins []string, wallets []models.Wallet) []models.Wallet {
	byCoin := make(map[string]models.Wallet, len(wallets))
	for _, w := range wallets {
		byCoin[w.CoinID] = w
	}

	merged := make([]models.Wallet, 0, len(coins))
	for _, coin := range coins {
		if w, ok := byCoin[coin]; ok {
			merged = append(merged, w)
		} else {
			merged = append(merged, models.Wallet{CoinID: coin})
		}
	}
	return merged
}

// SortWallets orders the list by balance or coin name.
func SortWallets(wallets []models.Wallet, key WalletSortKey, ascending bool) {
	sort.SliceStable(wallets, func(i, j int) bool {
		a, b := wallets[i], wallets[j]
		if !ascending {
			a, b = b, a
		}
		if key == WalletSortName {
			return a.CoinID < b.CoinID
		}
		return a.Balance < b.Balance
	})
}

// SetWalletSort updates the sort preference and re-renders.
func (c *Controller) SetWalletSort(ctx context.Context, key WalletSortKey, ascending bool) {
	c.mu.Lock()
	c.walletSortKey = key
	c.walletSortAsc = ascending
	c.mu.Unlock()
	c.RefreshWallets(ctx)
}

// SetWalletHideZero toggles filtering of zero-balance wallets.
func (c *Controller) SetWalletHideZero(ctx context.Context, hide bool) {
	c.mu.Lock()
	c.walletHideZero = hide
	c.mu.Unlock()
	c.RefreshWallets(ctx)
}

// RefreshWallets fetches, merges, sorts, filters, and renders the wallet
// view.
func (c *Controller) RefreshWallets(ctx context.Context) {
	wallets, err := c.gateway.Wallets(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Wallet fetch failed")
		c.displays.Wallets.ShowError(failureText("Failed to load wallets", err))
		return
	}

	c.mu.Lock()
	coins := c.coins
	key := c.walletSortKey
	ascending := c.walletSortAsc
	hideZero := c.walletHideZero
	c.mu.Unlock()

	merged := MergeWallets(coins, wallets)
	if hideZero {
		visible := merged[:0]
		for _, w := range merged {
			if w.Balance > 0 {
				visible = append(visible, w)
			}
		}
		merged = visible
	}
	SortWallets(merged, key, ascending)

	c.displays.Wallets.ShowWallets(merged)
}

// OpenDeposit opens the deposit dialog for a supported coin.
func (c *Controller) OpenDeposit(coinID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, coin := range c.coins {
		if coin == coinID {
			c.depositCoin = coinID
			return
		}
	}
	c.logger.WithField("coin", coinID).Warn("Ignoring deposit for unsupported coin")
}

// CloseDeposit dismisses the deposit dialog.
func (c *Controller) CloseDeposit() {
	c.mu.Lock()
	c.depositCoin = ""
	c.mu.Unlock()
}

// DepositCoin returns the coin of the open deposit dialog, "" when closed.
func (c *Controller) DepositCoin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depositCoin
}

// SubmitDeposit validates the amount, credits the open dialog's coin, and
// refreshes the wallet view.
func (c *Controller) SubmitDeposit(ctx context.Context, amountInput string) {
	c.mu.Lock()
	coin := c.depositCoin
	c.mu.Unlock()
	if coin == "" {
		return
	}

	amount, err := strconv.ParseFloat(amountInput, 64)
	if err != nil || amount <= 0 {
		c.displays.Messages.Alert("Please enter a valid amount")
		return
	}

	if err := c.gateway.Deposit(ctx, coin, amount); err != nil {
		c.displays.Messages.Alert(failureText("Deposit failed", err))
		return
	}

	c.displays.Messages.Alert("Deposit complete")
	c.CloseDeposit()
	c.RefreshWallets(ctx)
}

// ResetWallets clears all balances back to the backend defaults.
func (c *Controller) ResetWallets(ctx context.Context) {
	if err := c.gateway.ResetWallets(ctx); err != nil {
		c.displays.Messages.Alert(failureText("Reset failed", err))
		return
	}
	c.displays.Messages.Alert("Wallets reset")
	c.RefreshWallets(ctx)
}
