package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Run fires job on the given cron expression and blocks. Used by the
// extractor's daemon mode so deployments without an external scheduler can
// still poll the upstream periodically.
func Run(cronExpr string, job func()) error {
	c := cron.New()
	if _, err := c.AddFunc(cronExpr, job); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronExpr, err)
	}
	slog.Info("scheduler started", "cron", cronExpr)
	c.Run()
	return nil
}
