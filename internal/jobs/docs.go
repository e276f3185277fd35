// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take a seconds field ("0 */15 * * * *" runs every fifteen minutes).
//
// # Available Jobs
//
// 1. ServiceTimeJob - recomputes the average service time of every restaurant.
// Deliveries already refresh their own restaurant; the job repairs drift after
// a change of estimation strategy or manual edits of the orders table.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger, jobs.NewServiceTimeJob(schedule, handler, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing run is logged and the next run proceeds as scheduled. Failed job
// starts stop any already running jobs.
package jobs
