package exchange

import (
	"context"

	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
)

// Gateway is the backend contract consumed by the session controller.
// *Client implements it; tests substitute fakes.
type Gateway interface {
	// Session and profile
	Probe(ctx context.Context) (*models.Member, error)
	Login(ctx context.Context, account, password string) (*models.Member, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, reg models.Registration) (*models.Member, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Member, error)

	// Market data
	SupportedCoins(ctx context.Context) ([]string, error)
	OrderBook(ctx context.Context, symbolID string, tradeType models.TradeType) (models.OrderBook, error)
	Candles(ctx context.Context, symbolID, interval string) ([]marketdata.RawCandle, error)
	Tickers(ctx context.Context) (map[string]float64, error)

	// Orders
	MyOrders(ctx context.Context) ([]models.Order, error)
	SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID int) error
	TradeFills(ctx context.Context) ([]models.TradeFill, error)

	// Wallets
	Wallets(ctx context.Context) ([]models.Wallet, error)
	Deposit(ctx context.Context, coinID string, amount float64) error
	ResetWallets(ctx context.Context) error
	Transactions(ctx context.Context) ([]models.LedgerEntry, error)
}

var _ Gateway = (*Client)(nil)
