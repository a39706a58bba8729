package monitoring

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/campuswatch/campuswatch-be/internal/models"
	"github.com/campuswatch/campuswatch-be/internal/services"
)

// StatUpdater periodically snapshots report counts by status. The snapshot
// backs the stats endpoint so dashboard polling never hits the database.
type StatUpdater struct {
	reportSvc services.ReportServiceProvider
	schedule  cron.Schedule
	done      chan bool

	mu       sync.RWMutex
	snapshot map[models.ReportStatus]int
}

// NewStatUpdater creates a new StatUpdater. cronExpr is a standard cron
// expression or a descriptor like "@every 1m".
func NewStatUpdater(reportSvc services.ReportServiceProvider, cronExpr string) (*StatUpdater, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &StatUpdater{
		reportSvc: reportSvc,
		schedule:  schedule,
		done:      make(chan bool),
		snapshot:  map[models.ReportStatus]int{},
	}, nil
}

// Run starts the periodic updates.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")

	// Run once immediately on start
	su.updateReportStats()

	for {
		timer := time.NewTimer(time.Until(su.schedule.Next(time.Now())))
		select {
		case <-su.done:
			timer.Stop()
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-timer.C:
			su.updateReportStats()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	su.done <- true
}

// Snapshot returns the most recent status counts.
func (su *StatUpdater) Snapshot() map[models.ReportStatus]int {
	su.mu.RLock()
	defer su.mu.RUnlock()

	out := make(map[models.ReportStatus]int, len(su.snapshot))
	for status, n := range su.snapshot {
		out[status] = n
	}
	return out
}

func (su *StatUpdater) updateReportStats() {
	counts, err := su.reportSvc.CountsByStatus()
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: Failed to count reports")
		return
	}

	su.mu.Lock()
	su.snapshot = counts
	su.mu.Unlock()

	log.Debug().
		Int("pending", counts[models.StatusPending]).
		Int("verified", counts[models.StatusVerified]).
		Int("resolved", counts[models.StatusResolved]).
		Msg("StatUpdater: Report stats refreshed")
}
