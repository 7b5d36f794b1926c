package jobs

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/logging"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// DefaultCacheWarmSchedule runs at the start of every minute.
	DefaultCacheWarmSchedule = "0 * * * * *"

	cacheWarmRunTimeout = 30 * time.Second
)

// LatestOrdersHandler loads the newest orders.
type LatestOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetLatestOrdersQuery) ([]*order.Order, error)
}

// CacheWarmJob keeps the order cache filled with the most recent orders, so
// reads of fresh orders are served from memory.
type CacheWarmJob struct {
	newHandler func() LatestOrdersHandler
	cache      ports.OrderCache
	limit      int
	schedule   string
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewCacheWarmJob creates the job. newHandler is called once per run so each
// run reads through its own unit of work.
func NewCacheWarmJob(
	newHandler func() LatestOrdersHandler,
	cache ports.OrderCache,
	limit int,
	schedule string,
	logger *zap.Logger,
) *CacheWarmJob {
	if schedule == "" {
		schedule = DefaultCacheWarmSchedule
	}
	return &CacheWarmJob{
		newHandler: newHandler,
		cache:      cache,
		limit:      limit,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logging.Component(logger, "cache_warm_job"),
	}
}

func (j *CacheWarmJob) Name() string {
	return "cache_warm_job"
}

// Run loads the newest orders once and returns how many were cached.
func (j *CacheWarmJob) Run(ctx context.Context) (int, error) {
	query, err := queries.NewGetLatestOrdersQuery(j.limit)
	if err != nil {
		return 0, err
	}

	orders, err := j.newHandler().Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	// Oldest first, so the newest order ends up most recently used.
	for i := len(orders) - 1; i >= 0; i-- {
		j.cache.Set(orders[i])
	}

	return len(orders), nil
}

// Start schedules the job.
func (j *CacheWarmJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cacheWarmRunTimeout)
		defer cancel()

		cached, err := j.Run(ctx)
		if err != nil {
			j.logger.Error("cache warm-up failed", zap.Error(err))
			return
		}
		j.logger.Debug("cache warmed", zap.Int("orders", cached))
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cache warm job started", zap.String("schedule", j.schedule), zap.Int("limit", j.limit))
	return nil
}

// Stop unschedules the job and waits for a running warm-up to finish.
func (j *CacheWarmJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("cache warm job stopped")
}
