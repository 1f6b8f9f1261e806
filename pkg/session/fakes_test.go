package session

import (
	"context"
	"sync"
	"time"

	"github.com/quantfold/tradeterm/pkg/marketdata"
	"github.com/quantfold/tradeterm/pkg/models"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// fakeGateway is an in-memory Gateway with per-operation call counters and
// programmable failures.
type fakeGateway struct {
	mu sync.Mutex

	coins    []string
	coinsErr error

	member   *models.Member
	probeErr error
	loginErr error

	orders    []models.Order
	ordersErr error

	book    models.OrderBook
	bookErr error

	candles    []marketdata.RawCandle
	candlesErr error

	submitResp *models.Order
	submitErr  error
	lastSubmit models.OrderRequest

	cancelErr error

	wallets    []models.Wallet
	walletsErr error
	ledger     []models.LedgerEntry
	fills      []models.TradeFill
	tickers    map[string]float64

	// One-shot gates: when set, the next fetch signals started, then blocks
	// until release closes. Used to hold a response in flight across a mode
	// switch.
	bookStarted   chan struct{}
	bookRelease   chan struct{}
	ordersStarted chan struct{}
	ordersRelease chan struct{}

	calls map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		coins:      []string{"USDT", "BTC", "ETH"},
		member:     &models.Member{MemberID: 1, Account: "alice", Name: "Alice"},
		submitResp: &models.Order{OrderID: 42},
		book: models.OrderBook{
			Asks: []models.BookLevel{{Price: 101, Quantity: 1}},
			Bids: []models.BookLevel{{Price: 99, Quantity: 1}},
		},
		candles: []marketdata.RawCandle{
			{OpenTimeMs: 1700000000000, Open: "100", High: "101", Low: "99", Close: "100.5"},
		},
		tickers: map[string]float64{"BTCUSDT": 50000},
		calls:   map[string]int{},
	}
}

func (g *fakeGateway) count(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) gateNextBook(started, release chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bookStarted, g.bookRelease = started, release
}

func (g *fakeGateway) gateNextOrders(started, release chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ordersStarted, g.ordersRelease = started, release
}

func (g *fakeGateway) lastSubmitted() models.OrderRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSubmit
}

func (g *fakeGateway) record(op string) {
	g.calls[op]++
}

func (g *fakeGateway) Probe(ctx context.Context) (*models.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("probe")
	if g.probeErr != nil {
		return nil, g.probeErr
	}
	return g.member, nil
}

func (g *fakeGateway) Login(ctx context.Context, account, password string) (*models.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("login")
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.member, nil
}

func (g *fakeGateway) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("logout")
	return nil
}

func (g *fakeGateway) Register(ctx context.Context, reg models.Registration) (*models.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("register")
	return g.member, nil
}

func (g *fakeGateway) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Member, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("updateProfile")
	return g.member, nil
}

func (g *fakeGateway) SupportedCoins(ctx context.Context) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("coins")
	if g.coinsErr != nil {
		return nil, g.coinsErr
	}
	return g.coins, nil
}

func (g *fakeGateway) OrderBook(ctx context.Context, symbolID string, tradeType models.TradeType) (models.OrderBook, error) {
	g.mu.Lock()
	started, release := g.bookStarted, g.bookRelease
	g.bookStarted, g.bookRelease = nil, nil
	g.mu.Unlock()
	if started != nil {
		close(started)
		<-release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("book")
	if g.bookErr != nil {
		return models.OrderBook{}, g.bookErr
	}
	return g.book, nil
}

func (g *fakeGateway) Candles(ctx context.Context, symbolID, interval string) ([]marketdata.RawCandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("candles")
	if g.candlesErr != nil {
		return nil, g.candlesErr
	}
	return g.candles, nil
}

func (g *fakeGateway) Tickers(ctx context.Context) (map[string]float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("tickers")
	return g.tickers, nil
}

func (g *fakeGateway) MyOrders(ctx context.Context) ([]models.Order, error) {
	g.mu.Lock()
	started, release := g.ordersStarted, g.ordersRelease
	g.ordersStarted, g.ordersRelease = nil, nil
	g.mu.Unlock()
	if started != nil {
		close(started)
		<-release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("myOrders")
	if g.ordersErr != nil {
		return nil, g.ordersErr
	}
	return g.orders, nil
}

func (g *fakeGateway) SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("submit")
	g.lastSubmit = req
	if g.submitErr != nil {
		return nil, g.submitErr
	}
	return g.submitResp, nil
}

func (g *fakeGateway) CancelOrder(ctx context.Context, orderID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("cancel")
	return g.cancelErr
}

func (g *fakeGateway) TradeFills(ctx context.Context) ([]models.TradeFill, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("fills")
	return g.fills, nil
}

func (g *fakeGateway) Wallets(ctx context.Context) ([]models.Wallet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("wallets")
	if g.walletsErr != nil {
		return nil, g.walletsErr
	}
	return g.wallets, nil
}

func (g *fakeGateway) Deposit(ctx context.Context, coinID string, amount float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("deposit")
	return nil
}

func (g *fakeGateway) ResetWallets(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("reset")
	return nil
}

func (g *fakeGateway) Transactions(ctx context.Context) ([]models.LedgerEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("transactions")
	return g.ledger, nil
}

// displayRecorder implements every sink and records what was rendered.
type displayRecorder struct {
	mu sync.Mutex

	orders    [][]models.Order
	books     []marketdata.BookView
	chartData [][]models.Candle
	formats   []marketdata.PriceFormat
	resets    int

	wallets    [][]models.Wallet
	walletErrs []string
	funds      [][]models.LedgerEntry
	fills      [][]models.TradeFill
	histErrs   []string
	tickers    []map[string]float64

	inline map[InlineArea]string
	clears int
	alerts []string
}

func newDisplayRecorder() *displayRecorder {
	return &displayRecorder{inline: map[InlineArea]string{}}
}

func (d *displayRecorder) displays() Displays {
	return Displays{
		Orders:   d,
		Book:     d,
		Chart:    d,
		Wallets:  d,
		History:  d,
		Tickers:  d,
		Messages: d,
	}
}

func (d *displayRecorder) ShowOrders(orders []models.Order) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders = append(d.orders, orders)
}

func (d *displayRecorder) ShowBook(view marketdata.BookView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.books = append(d.books, view)
}

func (d *displayRecorder) SetData(candles []models.Candle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chartData = append(d.chartData, candles)
}

func (d *displayRecorder) ApplyOptions(format marketdata.PriceFormat) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.formats = append(d.formats, format)
}

func (d *displayRecorder) ResetView() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
}

func (d *displayRecorder) ShowWallets(wallets []models.Wallet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wallets = append(d.wallets, wallets)
}

func (d *displayRecorder) ShowError(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.walletErrs = append(d.walletErrs, message)
	d.histErrs = append(d.histErrs, message)
}

func (d *displayRecorder) ShowFunds(entries []models.LedgerEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.funds = append(d.funds, entries)
}

func (d *displayRecorder) ShowFills(fills []models.TradeFill) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fills = append(d.fills, fills)
}

func (d *displayRecorder) ShowTickers(tickers map[string]float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tickers = append(d.tickers, tickers)
}

func (d *displayRecorder) SetInline(area InlineArea, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inline[area] = text
}

func (d *displayRecorder) ClearInline() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inline = map[InlineArea]string{}
	d.clears++
}

func (d *displayRecorder) Alert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, text)
}

func (d *displayRecorder) bookCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.books)
}

func (d *displayRecorder) ordersCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.orders)
}

func (d *displayRecorder) resetCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}

func (d *displayRecorder) clearCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

func (d *displayRecorder) inlineText(area InlineArea) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inline[area]
}

func (d *displayRecorder) lastFormat() (marketdata.PriceFormat, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.formats) == 0 {
		return marketdata.PriceFormat{}, false
	}
	return d.formats[len(d.formats)-1], true
}

func (d *displayRecorder) lastFills() ([]models.TradeFill, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.fills) == 0 {
		return nil, false
	}
	return d.fills[len(d.fills)-1], true
}

func (d *displayRecorder) lastAlert() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.alerts) == 0 {
		return ""
	}
	return d.alerts[len(d.alerts)-1]
}

func (d *displayRecorder) lastOrders() []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.orders) == 0 {
		return nil
	}
	return d.orders[len(d.orders)-1]
}

func (d *displayRecorder) lastChart() []models.Candle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.chartData) == 0 {
		return nil
	}
	return d.chartData[len(d.chartData)-1]
}

func (d *displayRecorder) lastWallets() []models.Wallet {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.wallets) == 0 {
		return nil
	}
	return d.wallets[len(d.wallets)-1]
}

func (d *displayRecorder) lastBook() (marketdata.BookView, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.books) == 0 {
		return marketdata.BookView{}, false
	}
	return d.books[len(d.books)-1], true
}

func newTestController(gateway *fakeGateway, displays *displayRecorder) *Controller {
	return NewController(gateway, displays.displays(), testLogger(), Options{
		PollInterval: 10 * time.Millisecond,
	})
}
