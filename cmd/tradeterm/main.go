package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/quantfold/tradeterm/internal/config"
	"github.com/quantfold/tradeterm/pkg/exchange"
	"github.com/quantfold/tradeterm/pkg/models"
	"github.com/quantfold/tradeterm/pkg/session"
	"github.com/quantfold/tradeterm/pkg/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradeterm",
		Short: "Terminal client for the exchange sandbox",
		Long:  `An interactive terminal front end for the simulated exchange: spot trading, wallets, and live polled market data`,
		Run:   runTerminal,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runTerminal(cmd *cobra.Command, args []string) {
	// .env is optional, real environment wins either way
	_ = godotenv.Load()

	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open log file")
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := exchange.NewClient(
		cfg.Server.BaseURL,
		cfg.Server.TimeoutDuration(),
		float64(cfg.Server.RateLimit),
		logger,
	)

	terminal := ui.NewTerminal(os.Stdout)
	controller := session.NewController(client, terminal.Displays(), logger, session.Options{
		QuoteCurrency: cfg.Trading.QuoteCurrency,
		PollInterval:  cfg.Trading.PollInterval(),
		ChartInterval: cfg.Trading.ChartInterval,
		FallbackCoins: cfg.Trading.FallbackCoins,
	})

	controller.Startup(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal")
		cancel()
		controller.EnterMode(context.Background(), session.ModeLoggedOut)
		os.Exit(0)
	}()

	fmt.Println(`tradeterm ready, type "help" for commands`)
	repl(ctx, controller)

	controller.EnterMode(context.Background(), session.ModeLoggedOut)
}

// repl reads one command per line and dispatches it to the controller. Every
// mutation renders through the terminal sinks, so commands have no output of
// their own beyond errors.
func repl(ctx context.Context, c *session.Controller) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", strings.ToLower(string(c.Mode())))
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		dispatch(ctx, c, fields[0], fields[1:])
	}
}

func dispatch(ctx context.Context, c *session.Controller, verb string, args []string) {
	switch verb {
	case "help":
		printHelp()

	case "login":
		if len(args) < 2 {
			fmt.Println("usage: login <account> <password>")
			return
		}
		c.Login(ctx, args[0], args[1])
	case "logout":
		c.Logout(ctx)
	case "signup":
		c.EnterMode(ctx, session.ModeRegistering)
	case "register":
		if len(args) < 2 {
			fmt.Println("usage: register <account> <password> [name] [number]")
			return
		}
		reg := models.Registration{Account: args[0], Password: args[1]}
		if len(args) > 2 {
			reg.Name = args[2]
		}
		if len(args) > 3 {
			reg.Number = args[3]
		}
		c.Register(ctx, reg)

	case "dashboard":
		c.EnterMode(ctx, session.ModeDashboard)
	case "trade":
		c.EnterMode(ctx, session.ModeTrading)
	case "wallet":
		c.EnterMode(ctx, session.ModeWallet)
	case "profile":
		c.EnterMode(ctx, session.ModeProfile)

	case "symbol":
		if len(args) < 1 {
			fmt.Println("usage: symbol <SYMBOLID>")
			return
		}
		c.SelectSymbol(ctx, strings.ToUpper(args[0]))
	case "interval":
		if len(args) < 1 {
			fmt.Println("usage: interval <1m|15m|1h|...>")
			return
		}
		c.SetChartInterval(ctx, args[0])
	case "side":
		if len(args) < 1 {
			fmt.Println("usage: side <buy|sell>")
			return
		}
		if strings.EqualFold(args[0], "sell") {
			c.SetOrderSide(models.OrderSideSell)
		} else {
			c.SetOrderSide(models.OrderSideBuy)
		}
	case "filter":
		if len(args) < 1 {
			fmt.Println("usage: filter <all|open|filled|canceled>")
			return
		}
		c.SetOrderStatusFilter(statusFilter(args[0]))
	case "history":
		if len(args) > 0 && strings.EqualFold(args[0], "trades") {
			c.SwitchHistoryTab(ctx, session.TabTrades)
		} else {
			c.SwitchHistoryTab(ctx, session.TabFunds)
		}

	case "price":
		if len(args) < 1 {
			fmt.Println("usage: price <value>")
			return
		}
		c.SetPriceInput(args[0])
	case "qty":
		if len(args) < 1 {
			fmt.Println("usage: qty <value>")
			return
		}
		c.SetQuantityInput(args[0])
	case "limit":
		c.SubmitOrder(ctx, models.OrderTypeLimit)
	case "market":
		c.SubmitOrder(ctx, models.OrderTypeMarket)
	case "cancel":
		if len(args) < 1 {
			fmt.Println("usage: cancel <orderId>")
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("order id must be a number")
			return
		}
		c.CancelOrder(ctx, id)

	case "deposit":
		switch len(args) {
		case 1:
			c.OpenDeposit(strings.ToUpper(args[0]))
		case 2:
			c.OpenDeposit(strings.ToUpper(args[0]))
			c.SubmitDeposit(ctx, args[1])
		default:
			fmt.Println("usage: deposit <coin> [amount]")
		}
	case "reset":
		c.ResetWallets(ctx)
	case "hidezero":
		c.SetWalletHideZero(ctx, len(args) == 0 || !strings.EqualFold(args[0], "off"))
	case "sort":
		key := session.WalletSortBalance
		if len(args) > 0 && strings.EqualFold(args[0], "name") {
			key = session.WalletSortName
		}
		ascending := len(args) > 1 && strings.EqualFold(args[1], "asc")
		c.SetWalletSort(ctx, key, ascending)

	default:
		fmt.Printf("unknown command %q, type \"help\"\n", verb)
	}
}

func statusFilter(s string) session.StatusFilter {
	switch strings.ToLower(s) {
	case "open":
		return session.FilterOpen
	case "filled":
		return session.FilterFilled
	case "canceled":
		return session.FilterCanceled
	default:
		return session.FilterAll
	}
}

func printHelp() {
	fmt.Print(`session:   login <account> <password> | logout | signup | register <account> <password> [name] [number]
views:     dashboard | trade | wallet | profile
trading:   symbol <ID> | interval <1m> | side <buy|sell> | filter <all|open|filled|canceled>
           price <v> | qty <v> | limit | market | cancel <orderId> | history [funds|trades]
wallet:    deposit <coin> [amount] | reset | hidezero [off] | sort [balance|name] [asc|desc]
misc:      help | quit
`)
}
