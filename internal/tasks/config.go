package tasks

import "time"

// Config tunes the background task queue.
type Config struct {
	// Workers is the number of concurrent task workers.
	Workers int

	// ReleaseAfter is how long a claimed task may run before it is handed
	// back to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed task rows are pruned.
	CleanupInterval time.Duration
}

// DefaultConfig returns the queue defaults. The audit purge is the only
// scheduled task, so a small worker pool is plenty.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}
