// File: internal/jobs/token_sweep.go

// Package jobs holds the background cron jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/mohdalimj86-del/yalla.ge/internal/account"
	"github.com/mohdalimj86-del/yalla.ge/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenSweepJob periodically clears expired email verification tokens from
// the account directory so stale links cannot linger indefinitely.
type TokenSweepJob struct {
	accounts      *account.Store
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewTokenSweepJob creates a new TokenSweepJob.
func NewTokenSweepJob(accounts *account.Store, logger *zap.Logger, cfg *config.Config) *TokenSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))
	return &TokenSweepJob{
		accounts:      accounts,
		logger:        logger.Named("TokenSweepJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *TokenSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.TokenSweepJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Token sweep job schedule not defined (TOKEN_SWEEP_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule token sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Token sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *TokenSweepJob) runJob() {
	j.logger.Info("Starting token sweep job run...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	swept, err := j.accounts.SweepExpiredTokens(ctx)
	if err != nil {
		j.logger.Error("Token sweep job run failed", zap.Error(err))
	} else {
		j.logger.Info("Token sweep job run completed", zap.Int("tokens_swept", swept))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *TokenSweepJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping token sweep job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Token sweep job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Token sweep job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
