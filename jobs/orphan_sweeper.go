package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"setsweet/models"
	"setsweet/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrphanSweeper periodically deletes uploaded files that no project script
// and no storyboard frame references anymore. Request handlers already clean
// up on delete/replace; the sweeper catches files left behind when that
// best-effort cleanup failed or the process died mid-request.
type OrphanSweeper struct {
	db             *mongo.Database
	storageService *services.StorageService
	gracePeriod    time.Duration
	logger         *log.Logger
}

func NewOrphanSweeper(db *mongo.Database, storageService *services.StorageService, gracePeriod time.Duration) *OrphanSweeper {
	return &OrphanSweeper{
		db:             db,
		storageService: storageService,
		gracePeriod:    gracePeriod,
		logger:         log.New(log.Writer(), "[ORPHAN_SWEEPER] ", log.LstdFlags),
	}
}

// Start runs a sweep immediately and then on every tick. It blocks; run it
// in its own goroutine.
func (sw *OrphanSweeper) Start(interval time.Duration) {
	sw.logger.Printf("Starting orphan sweeper, running every %v", interval)

	sw.runSweep()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		sw.runSweep()
	}
}

func (sw *OrphanSweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	removed, err := sw.Sweep(ctx)
	if err != nil {
		sw.logger.Printf("Sweep failed: %v", err)
		return
	}

	sw.logger.Printf("Sweep completed, removed %d orphaned files", removed)
}

// Sweep walks the uploads tree and removes every file older than the grace
// period that is not referenced from the database. The grace period keeps
// in-flight uploads from being reaped before their reference is written.
func (sw *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	referenced, err := sw.collectReferenced(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-sw.gracePeriod)
	removed := 0

	baseDir := sw.storageService.BaseDir()
	for _, subdir := range []string{services.ScriptsDir, services.StoryboardDir} {
		entries, err := os.ReadDir(filepath.Join(baseDir, subdir))
		if err != nil {
			sw.logger.Printf("Failed to read %s: %v", subdir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}

			urlPath := services.URLPrefix + "/" + subdir + "/" + entry.Name()
			if referenced[urlPath] {
				continue
			}
			if info.ModTime().After(cutoff) {
				continue
			}

			if err := os.Remove(filepath.Join(baseDir, subdir, entry.Name())); err != nil {
				sw.logger.Printf("Failed to remove orphan %s: %v", urlPath, err)
				continue
			}

			removed++
			sw.logger.Printf("Removed orphaned file: %s", urlPath)
		}
	}

	return removed, nil
}

// collectReferenced gathers every file path the database still points at.
func (sw *OrphanSweeper) collectReferenced(ctx context.Context) (map[string]bool, error) {
	referenced := make(map[string]bool)

	projectCursor, err := sw.db.Collection("projects").Find(ctx, bson.M{"script_url": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects with scripts: %w", err)
	}
	for projectCursor.Next(ctx) {
		var project models.Project
		if err := projectCursor.Decode(&project); err != nil {
			continue
		}
		referenced[project.ScriptURL] = true
	}
	projectCursor.Close(ctx)

	sceneCursor, err := sw.db.Collection("scenes").Find(ctx, bson.M{"storyboard.image_url": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes with images: %w", err)
	}
	for sceneCursor.Next(ctx) {
		var scene models.Scene
		if err := sceneCursor.Decode(&scene); err != nil {
			continue
		}
		for _, frame := range scene.Storyboard {
			if frame.ImageURL != "" {
				referenced[frame.ImageURL] = true
			}
		}
	}
	sceneCursor.Close(ctx)

	return referenced, nil
}
