package board

import (
	"context"
	"log"
	"time"
)

// StartMaintenanceWorker runs the periodic sweeps an external cron
// would otherwise drive: weekly auto-selection for every known user
// and fortnightly boss maintenance. It blocks until ctx is cancelled,
// so callers usually run it in a goroutine.
func (e *Engine) StartMaintenanceWorker(ctx context.Context) {
	weekly := time.NewTicker(7 * 24 * time.Hour)
	defer weekly.Stop()
	fortnightly := time.NewTicker(14 * 24 * time.Hour)
	defer fortnightly.Stop()

	log.Println("Starting board maintenance worker...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutdown signal received, stopping board maintenance worker...")
			return

		case <-weekly.C:
			e.sweep("weekly auto-selection", func(userID int64) error {
				_, err := e.RunWeeklyAutoSelection(userID)
				return err
			})

		case <-fortnightly.C:
			e.sweep("boss maintenance", func(userID int64) error {
				_, err := e.RunBossMaintenance(userID)
				return err
			})
		}
	}
}

// sweep applies op to every user with a board, logging and skipping
// per-user failures so one bad board never stalls the rest.
func (e *Engine) sweep(name string, op func(userID int64) error) {
	ids, err := e.repo.ListBoardUserIDs()
	if err != nil {
		log.Printf("Error listing users for %s sweep: %v", name, err)
		return
	}
	for _, id := range ids {
		if err := op(id); err != nil {
			log.Printf("Error running %s for user %d: %v", name, id, err)
		}
	}
}
