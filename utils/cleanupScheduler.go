package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"taxprep/database"
	"taxprep/models"
)

// Replaced uploads are not deleted inline; the sweep collects them once
// they are older than the grace period and no user record points at them.
const orphanGracePeriod = 24 * time.Hour

// InitializeCleanupScheduler sets up the orphaned upload sweeper
func InitializeCleanupScheduler() {
	log.Println("[CLEANUP-SCHEDULER] Initializing upload cleanup scheduler...")

	c := cron.New()

	// Run daily at 3 AM to remove replaced uploads nothing references
	c.AddFunc("0 3 * * *", func() {
		log.Println("[CLEANUP-SCHEDULER] Running daily orphaned upload sweep...")
		removed, err := SweepOrphanedUploads()
		if err != nil {
			log.Printf("[CLEANUP-SCHEDULER] Sweep failed: %v", err)
			return
		}
		log.Printf("[CLEANUP-SCHEDULER] Sweep complete, removed %d orphaned files", removed)
	})

	c.Start()
	log.Println("[CLEANUP-SCHEDULER] Cleanup scheduler started - runs daily at 3 AM")
}

// SweepOrphanedUploads deletes stored form files that no user record
// references and that are older than the grace period. Files referenced by
// soft-deleted accounts are kept with the rest of the account's data.
func SweepOrphanedUploads() (int, error) {
	db := database.Database.Db

	referenced := make(map[string]bool)
	for _, column := range []string{"w9_file_name", "w2_file_name"} {
		var names []string
		if err := db.Model(&models.User{}).
			Where(column + " <> ''").
			Pluck(column, &names).Error; err != nil {
			return 0, fmt.Errorf("failed to collect referenced uploads: %v", err)
		}
		for _, n := range names {
			referenced[n] = true
		}
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	removed := 0

	for _, kind := range []string{W9FormKind, W2FormKind} {
		dir := FormDir(kind)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("failed to read upload dir %s: %v", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || referenced[entry.Name()] {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				log.Printf("[CLEANUP-SCHEDULER] Skipping %s: %v", entry.Name(), err)
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				log.Printf("[CLEANUP-SCHEDULER] Failed to remove %s: %v", entry.Name(), err)
				continue
			}
			removed++
		}
	}

	return removed, nil
}
