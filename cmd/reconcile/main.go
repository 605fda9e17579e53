package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/csytan/triplecrownforheart/internal/app"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

// reconcile runs one reconciliation cycle, for cron or manual use.
func main() {
	ctx, quit := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer quit()

	a, err := app.New(ctx)
	if err != nil {
		logger.Error(ctx,
			"❌ Failed to create an application",
			logger.ErrorF(err),
		)
		os.Exit(1)
	}

	report, err := a.RunReconcileOnce(ctx)
	if err != nil {
		logger.Error(ctx, "❌ reconcile cycle failed", logger.ErrorF(err))
		os.Exit(1)
	}

	logger.Info(ctx, "✅ reconcile cycle finished",
		logger.Int("new_riders", report.NewRiders),
		logger.Int("new_donations", report.NewDonations),
		logger.Int("skipped", report.Skipped),
	)
}
