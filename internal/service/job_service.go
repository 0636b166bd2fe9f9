package service

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pulkitkochar/Book-Vaccine/internal/auth"
)

// JobService runs the periodic background jobs next to the poll loop: a
// progress summary every minute and a session state-file refresh so the
// stored issue timestamp survives a crash.
type JobService struct {
	Poller *PollService
	Store  *auth.Store
	Sess   auth.Session
	Log    *zap.SugaredLogger

	cron *cron.Cron
}

func NewJobService(poller *PollService, store *auth.Store, sess auth.Session, log *zap.SugaredLogger) *JobService {
	return &JobService{Poller: poller, Store: store, Sess: sess, Log: log}
}

// Start registers and launches the cron entries. Call Stop when the run
// ends.
func (s *JobService) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc("@every 1m", s.LogProgressSummary); err != nil {
		return err
	}
	if s.Store != nil {
		if _, err := s.cron.AddFunc("@every 5m", s.RefreshSessionFile); err != nil {
			return err
		}
	}
	s.cron.Start()
	return nil
}

func (s *JobService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// LogProgressSummary prints a one-line digest of the run so far.
func (s *JobService) LogProgressSummary() {
	snap := s.Poller.Snapshot()
	if snap.State == StateIdle {
		return
	}
	s.Log.Infof("Cron Job: state=%s cycles=%d qualifying=%d last_poll=%s",
		snap.State, snap.TotalCycles, snap.QualifyingSeen, snap.LastPollAt.Format(time.Kitchen))
}

// RefreshSessionFile rewrites the state file with the current session.
func (s *JobService) RefreshSessionFile() {
	if err := s.Store.Save(s.Sess); err != nil {
		s.Log.Warnf("Cron Job: failed to refresh session state file: %v", err)
	}
}
