package queue

import (
	"time"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerDailySalesReportJob()
}

// ================================================
// Daily sales report (previous UTC day)
// ================================================
func (s *Scheduler) registerDailySalesReportJob() error {
	task, err := NewTask(shared.TypeDailySalesReport, struct{}{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.jobConfig.DailySalesReportCron,
		task,
		asynq.Queue(shared.QueueAnalytics),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DailySalesReport job", err)
		return err
	}

	logger.Info("✓ Registered DailySalesReport", map[string]interface{}{
		"cron": s.jobConfig.DailySalesReportCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
