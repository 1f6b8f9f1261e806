package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/quantfold/tradeterm/pkg/exchange"
	"github.com/quantfold/tradeterm/pkg/models"
	"github.com/quantfold/tradeterm/pkg/poller"
	"github.com/sirupsen/logrus"
)

// DefaultFallbackCoins is used when the supported-coin fetch fails at
// startup.
var DefaultFallbackCoins = []string{"USDT", "BTC", "ETH", "BNB"}

// Options tunes the controller. Zero values fall back to the defaults the
// original venue shipped with.
type Options struct {
	QuoteCurrency string
	PollInterval  time.Duration
	ChartInterval string
	FallbackCoins []string
}

func (o *Options) withDefaults() {
	if o.QuoteCurrency == "" {
		o.QuoteCurrency = "USDT"
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Second
	}
	if o.ChartInterval == "" {
		o.ChartInterval = "1m"
	}
	if len(o.FallbackCoins) == 0 {
		o.FallbackCoins = DefaultFallbackCoins
	}
}

// Controller owns all session state: the active mode, the supported coin
// set, the member profile, and the trading workspace. Every mutation goes
// through its methods; the render sinks receive the results.
//
// Backend calls are made outside the state lock. Results are applied only
// after re-checking that the consuming view is still active, so a response
// that arrives after a mode switch is discarded instead of resurrecting a
// dead view.
type Controller struct {
	gateway   exchange.Gateway
	displays  Displays
	scheduler *poller.Scheduler
	logger    *logrus.Logger
	opts      Options

	mu             sync.Mutex
	mode           Mode
	member         *models.Member
	coins          []string
	ws             Workspace
	profileEditing bool
	depositCoin    string // coin of the open deposit dialog, "" when closed
	walletSortKey  WalletSortKey
	walletSortAsc  bool
	walletHideZero bool
}

func NewController(gateway exchange.Gateway, displays Displays, logger *logrus.Logger, opts Options) *Controller {
	opts.withDefaults()
	return &Controller{
		gateway:       gateway,
		displays:      displays,
		scheduler:     poller.NewScheduler(logger),
		logger:        logger,
		opts:          opts,
		mode:          ModeLoggedOut,
		coins:         opts.FallbackCoins,
		ws:            newWorkspace(opts.ChartInterval),
		walletSortKey: WalletSortBalance,
		walletSortAsc: false,
	}
}

// Startup loads the supported coin set and probes for an existing backend
// session: success lands on the dashboard, any failure on the login view.
func (c *Controller) Startup(ctx context.Context) {
	coins, err := c.gateway.SupportedCoins(ctx)
	if err != nil || len(coins) == 0 {
		c.logger.WithError(err).Warn("Failed to fetch supported coins, using defaults")
		coins = c.opts.FallbackCoins
	}
	c.mu.Lock()
	c.coins = coins
	c.mu.Unlock()

	if _, err := c.gateway.Probe(ctx); err != nil {
		c.logger.WithError(err).Info("No active session")
		c.EnterMode(ctx, ModeLoggedOut)
		return
	}
	c.EnterMode(ctx, ModeDashboard)
}

// EnterMode switches views. The previous mode is fully torn down first:
// polling stops, the deposit dialog closes, inline messages clear. Only then
// does the target mode's entry hook run. Transitions are direct jumps; there
// is no history stack.
func (c *Controller) EnterMode(ctx context.Context, mode Mode) {
	c.mu.Lock()
	previous := c.mode
	c.mode = mode
	c.depositCoin = ""
	if mode == ModeProfile {
		// Profile always opens read-only.
		c.profileEditing = false
	}
	c.mu.Unlock()

	c.scheduler.Stop()
	c.displays.Messages.ClearInline()

	c.logger.WithFields(logrus.Fields{"from": previous, "to": mode}).Debug("Mode transition")

	switch mode {
	case ModeDashboard:
		c.refreshDashboard(ctx)
	case ModeProfile:
		c.fetchProfile(ctx)
	case ModeWallet:
		c.RefreshWallets(ctx)
	case ModeTrading:
		c.mu.Lock()
		tradeType := c.ws.TradeType
		c.mu.Unlock()
		c.SetTradeType(ctx, tradeType)
		c.SwitchHistoryTab(ctx, TabFunds)
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Member returns the last fetched profile, nil when logged out.
func (c *Controller) Member() *models.Member {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.member
}

// Coins returns the supported coin set loaded at startup.
func (c *Controller) Coins() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	coins := make([]string, len(c.coins))
	copy(coins, c.coins)
	return coins
}

// Workspace returns a copy of the trading workspace state.
func (c *Controller) Workspace() Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	ws := c.ws
	ws.SymbolOptions = append([]SymbolOption(nil), c.ws.SymbolOptions...)
	ws.CachedOrders = append([]models.Order(nil), c.ws.CachedOrders...)
	return ws
}

// Login validates the credentials locally, authenticates, and lands on the
// dashboard. Failures stay on the login view with an inline message.
func (c *Controller) Login(ctx context.Context, account, password string) {
	if account == "" || password == "" {
		c.displays.Messages.SetInline(AreaLogin, "Account and password are required")
		return
	}

	member, err := c.gateway.Login(ctx, account, password)
	if err != nil {
		c.displays.Messages.SetInline(AreaLogin, failureText("Login failed", err))
		return
	}

	c.mu.Lock()
	c.member = member
	c.mu.Unlock()
	c.EnterMode(ctx, ModeDashboard)
}

// Logout ends the backend session and returns to the login view. A failed
// logout call still drops the local session.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.gateway.Logout(ctx); err != nil {
		c.logger.WithError(err).Warn("Logout request failed")
	}
	c.mu.Lock()
	c.member = nil
	c.mu.Unlock()
	c.EnterMode(ctx, ModeLoggedOut)
}

// Register creates an account and returns to the login view on success.
func (c *Controller) Register(ctx context.Context, reg models.Registration) {
	if reg.Account == "" || reg.Password == "" {
		c.displays.Messages.SetInline(AreaRegister, "Account and password are required")
		return
	}

	if _, err := c.gateway.Register(ctx, reg); err != nil {
		c.displays.Messages.SetInline(AreaRegister, failureText("Registration failed", err))
		return
	}

	c.displays.Messages.Alert("Registration complete, please log in")
	c.EnterMode(ctx, ModeLoggedOut)
}

// SetProfileEditing toggles the profile view between read-only and editing.
func (c *Controller) SetProfileEditing(editing bool) {
	c.mu.Lock()
	c.profileEditing = editing
	c.mu.Unlock()
}

// ProfileEditing reports whether the profile view is in edit mode.
func (c *Controller) ProfileEditing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileEditing
}

// UpdateProfile saves profile changes and re-fetches the stored copy.
func (c *Controller) UpdateProfile(ctx context.Context, update models.ProfileUpdate) {
	if _, err := c.gateway.UpdateProfile(ctx, update); err != nil {
		c.displays.Messages.SetInline(AreaProfile, failureText("Update failed", err))
		return
	}
	c.displays.Messages.SetInline(AreaProfile, "Profile updated")
	c.fetchProfile(ctx)
}

func (c *Controller) refreshDashboard(ctx context.Context) {
	member, err := c.gateway.Probe(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Profile fetch failed")
	} else {
		c.mu.Lock()
		c.member = member
		c.mu.Unlock()
	}

	tickers, err := c.gateway.Tickers(ctx)
	if err != nil {
		// Stale quotes stay on screen.
		c.logger.WithError(err).Warn("Ticker fetch failed")
		return
	}
	c.displays.Tickers.ShowTickers(tickers)
}

func (c *Controller) fetchProfile(ctx context.Context) {
	c.mu.Lock()
	c.profileEditing = false
	c.mu.Unlock()

	member, err := c.gateway.Probe(ctx)
	if err != nil {
		c.displays.Messages.SetInline(AreaProfile, failureText("Unable to load profile", err))
		return
	}
	c.mu.Lock()
	c.member = member
	c.mu.Unlock()
}

// failureText prefers the backend-provided reason and falls back to a
// generic connectivity message.
func failureText(prefix string, err error) string {
	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return prefix + ": " + apiErr.Message
	}
	if errors.As(err, &apiErr) {
		return prefix
	}
	return prefix + ": connection error"
}
