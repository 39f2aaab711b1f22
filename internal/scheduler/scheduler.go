package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/urbanphys/comfortsim/internal/simulation"
)

// Sweeper periodically clears stale scratch directories left behind by
// simulation runs.
type Sweeper struct {
	env      *simulation.Environment
	logger   *logrus.Logger
	cron     *cron.Cron
	schedule string
	maxAge   time.Duration
}

func NewSweeper(env *simulation.Environment, logger *logrus.Logger, schedule string, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		env:      env,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start the sweeper
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// sweep removes scratch directories older than the configured age
func (s *Sweeper) sweep() {
	removed, err := s.env.Sweep(s.maxAge)
	if err != nil {
		s.logger.Error("Failed to sweep scratch directories", err)
		return
	}
	if removed > 0 {
		s.logger.WithFields(logrus.Fields{
			"removed": removed,
		}).Info("Swept stale scratch directories")
	}
}

// Stop the sweeper
func (s *Sweeper) Stop() {
	s.cron.Stop()
}
