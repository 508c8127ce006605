package web

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes expired session directories from the upload and output
// roots on a schedule. A session directory expires when its modification
// time is older than the TTL.
type Sweeper struct {
	cron   *cron.Cron
	roots  []string
	ttl    time.Duration
	logger *slog.Logger
}

// NewSweeper builds a sweeper over the given root directories.
func NewSweeper(roots []string, ttl time.Duration, logger *slog.Logger) *Sweeper {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	return &Sweeper{
		cron:   c,
		roots:  roots,
		ttl:    ttl,
		logger: logger,
	}
}

// Start schedules the sweep every minute and runs the cron loop.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", slog.Duration("ttl", s.ttl))
	return nil
}

// Stop gracefully stops the cron loop.
func (s *Sweeper) Stop() context.Context {
	s.logger.Info("session sweeper stopping")
	return s.cron.Stop()
}

// sweep removes every session directory older than the TTL.
func (s *Sweeper) sweep() {
	cutoff := time.Now().Add(-s.ttl)
	removed := 0

	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			s.logger.Warn("reading session root", slog.String("root", root), slog.Any("error", err))
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				s.logger.Warn("removing expired session", slog.String("path", path), slog.Any("error", err))
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("expired sessions removed", slog.Int("count", removed))
	}
}
