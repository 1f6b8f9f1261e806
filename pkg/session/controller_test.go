package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/quantfold/tradeterm/pkg/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartup_ProbeSuccessLandsOnDashboard(t *testing.T) {
	gw := newFakeGateway()
	rec := newDisplayRecorder()
	c := newTestController(gw, rec)

	c.Startup(context.Background())

	assert.Equal(t, ModeDashboard, c.Mode())
	assert.Equal(t, []string{"USDT", "BTC", "ETH"}, c.Coins())
	require.NotNil(t, c.Member())
	assert.Equal(t, "alice", c.Member().Account)
}

func TestStartup_ProbeFailureFallsBackToLoggedOut(t *testing.T) {
	gw := newFakeGateway()
	gw.probeErr = errors.New("connection refused")
	c := newTestController(gw, newDisplayRecorder())

	c.Startup(context.Background())

	assert.Equal(t, ModeLoggedOut, c.Mode())
}

func TestStartup_CoinFetchFailureUsesFallbackSet(t *testing.T) {
	gw := newFakeGateway()
	gw.coinsErr = errors.New("boom")
	c := newTestController(gw, newDisplayRecorder())

	c.Startup(context.Background())

	assert.Equal(t, DefaultFallbackCoins, c.Coins())
}

func TestEnterMode_TradingStartsPollingAndExitStopsIt(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(gw, newDisplayRecorder())
	ctx := context.Background()

	c.EnterMode(ctx, ModeTrading)
	require.Eventually(t, func() bool { return gw.count("book") >= 3 },
		time.Second, time.Millisecond, "poll ticks should keep fetching the book")

	c.EnterMode(ctx, ModeDashboard)
	settled := gw.count("book")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, gw.count("book"), "no book fetches after leaving the trading view")
}

func TestEnterMode_ClearsInlineMessagesAndDepositDialog(t *testing.T) {
	gw := newFakeGateway()
	rec := newDisplayRecorder()
	c := newTestController(gw, rec)
	ctx := context.Background()

	c.EnterMode(ctx, ModeWallet)
	c.OpenDeposit("BTC")
	require.Equal(t, "BTC", c.DepositCoin())

	c.EnterMode(ctx, ModeDashboard)
	assert.Empty(t, c.DepositCoin(), "deposit dialog closes on mode exit")
	assert.Greater(t, rec.clearCount(), 0)
}

func TestLogin_ValidationFailsWithoutNetworkCall(t *testing.T) {
	gw := newFakeGateway()
	rec := newDisplayRecorder()
	c := newTestController(gw, rec)

	c.Login(context.Background(), "", "")

	assert.Equal(t, 0, gw.count("login"))
	assert.NotEmpty(t, rec.inlineText(AreaLogin))
	assert.Equal(t, ModeLoggedOut, c.Mode())
}

func TestLogin_BackendRejectionStaysLoggedOut(t *testing.T) {
	gw := newFakeGateway()
	gw.loginErr = &exchange.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	rec := newDisplayRecorder()
	c := newTestController(gw, rec)

	c.Login(context.Background(), "alice", "wrong")

	assert.Equal(t, ModeLoggedOut, c.Mode())
	assert.Contains(t, rec.inlineText(AreaLogin), "Invalid credentials")
}

func TestLogin_SuccessEntersDashboard(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(gw, newDisplayRecorder())

	c.Login(context.Background(), "alice", "secret")

	assert.Equal(t, ModeDashboard, c.Mode())
}

func TestLogout_DropsSessionEvenWhenBackendFails(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(gw, newDisplayRecorder())
	ctx := context.Background()
	c.Login(ctx, "alice", "secret")

	c.Logout(ctx)

	assert.Equal(t, ModeLoggedOut, c.Mode())
	assert.Nil(t, c.Member())
}

func TestEnterProfile_ForcesReadOnly(t *testing.T) {
	gw := newFakeGateway()
	c := newTestController(gw, newDisplayRecorder())
	ctx := context.Background()

	c.SetProfileEditing(true)
	c.EnterMode(ctx, ModeProfile)

	assert.False(t, c.ProfileEditing())
}
