// Package jobs provides scheduled background tasks for the orders service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and log through zap with a component field.
//
// # Available Jobs
//
// 1. CacheWarmJob - loads the newest orders into the order cache, every minute
// by default
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	warm := jobs.NewCacheWarmJob(newLatestOrdersHandler, orderCache, 1000, jobs.DefaultCacheWarmSchedule, logger)
//	jobManager := jobs.NewJobManager(logger, warm)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the schedule continues. A job that fails to start
// stops every job started before it.
package jobs
