package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"StockAdvisor/internal/advisor"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic report and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Advisor  Analyzer
	Notifier Sender
	Symbol   string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler for the given watch symbol.
func NewScheduler(ctx context.Context, adv Analyzer, sender Sender, symbol string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Advisor:  adv,
		Notifier: sender,
		Symbol:   symbol,
		Ctx:      ctx,
	}
}

// Register adds the report task. Without a watch symbol nothing is scheduled.
func (s *Scheduler) Register(reportCron string) error {
	if s.Symbol == "" {
		log.Println("[INFO] no advisor.symbol configured, scheduled report disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	log.Printf("[INFO] report for %s scheduled at %q", s.Symbol, reportCron)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow executes the report task immediately (for RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	log.Printf("[INFO] running scheduled report for %s", s.Symbol)
	s.trySend(s.analyze(s.Symbol))
}

// analyze returns the rendered report, or an error report on failure.
func (s *Scheduler) analyze(symbol string) string {
	a, err := s.Advisor.Analyze(s.Ctx, symbol)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", symbol, err)
		return notifier.FormatError(strings.ToUpper(strings.TrimSpace(symbol)), err)
	}
	return notifier.FormatReport(a)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	// Strip a "@BotName" suffix used in group chats.
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])
	switch {
	case cmd == "/analyze" || cmd == "/a":
		if len(fields) < 2 {
			return notifier.FormatError("/analyze", advisor.ErrEmptySymbol)
		}
		return s.analyze(fields[1])
	case cmd == "/report":
		if s.Symbol == "" {
			return "No watch symbol configured."
		}
		return s.analyze(s.Symbol)
	case strings.HasPrefix(cmd, "/"):
		return notifier.FormatHelp()
	case len(fields) == 1:
		return s.analyze(fields[0])
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
