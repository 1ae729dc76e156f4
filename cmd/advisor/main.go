package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/config"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	adv := advisor.New(collector.NewCollector(fetcher, cfg.DataSource.Timeout))

	// One-shot mode: advisor SYMBOL
	if len(os.Args) > 1 {
		os.Exit(runOnce(adv, os.Args[1]))
	}

	runBot(cfg, adv)
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	if cfg.DataSource.Mode == config.ModeRelay {
		return collector.NewRelayFetcher(cfg.DataSource.RelayURL, cfg.Proxy, cfg.DataSource.RateLimit)
	}
	yf := collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.Proxy, cfg.DataSource.RateLimit)
	yf.Range = cfg.DataSource.Range
	yf.Interval = cfg.DataSource.Interval
	return yf
}

func runOnce(adv *advisor.Advisor, symbol string) int {
	a, err := adv.Analyze(context.Background(), symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error\n%v\n", err)
		if errors.Is(err, advisor.ErrEmptySymbol) {
			fmt.Fprintln(os.Stderr, "Enter ticker like RPOWER.NS")
			return 2
		}
		return 1
	}
	fmt.Print(notifier.FormatReportText(a))
	return 0
}

func runBot(cfg *config.Config, adv *advisor.Advisor) {
	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	log.Println("[INFO] StockAdvisor bot starting...")

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, adv, tn, cfg.Advisor.Symbol)
	if err := sched.Register(cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" && cfg.Advisor.Symbol != "" {
		log.Println("[INFO] RUN_ON_START enabled, executing report now")
		go sched.RunReportNow()
	}

	log.Println("[INFO] StockAdvisor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockAdvisor stopped")
}
