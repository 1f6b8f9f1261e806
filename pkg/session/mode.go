package session

// Mode is the active view. Exactly one mode is active at a time; entering a
// mode fully tears the previous one down first.
type Mode string

const (
	ModeLoggedOut   Mode = "LOGGED_OUT"
	ModeRegistering Mode = "REGISTERING"
	ModeDashboard   Mode = "DASHBOARD"
	ModeProfile     Mode = "PROFILE"
	ModeWallet      Mode = "WALLET"
	ModeTrading     Mode = "TRADING"
)

// StatusFilter selects which cached orders are shown.
type StatusFilter string

const (
	FilterAll      StatusFilter = "ALL"
	FilterOpen     StatusFilter = "OPEN"
	FilterFilled   StatusFilter = "FILLED"
	FilterCanceled StatusFilter = "CANCELED"
)

// HistoryTab selects the history dataset below the trading view.
type HistoryTab string

const (
	TabFunds  HistoryTab = "FUNDS"
	TabTrades HistoryTab = "TRADES"
)

// InlineArea identifies a per-view validation/error message slot.
type InlineArea string

const (
	AreaLogin    InlineArea = "login"
	AreaRegister InlineArea = "register"
	AreaProfile  InlineArea = "profile"
)

// WalletSortKey orders the wallet view.
type WalletSortKey string

const (
	WalletSortBalance WalletSortKey = "BALANCE"
	WalletSortName    WalletSortKey = "NAME"
)
