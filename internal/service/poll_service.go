package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pulkitkochar/Book-Vaccine/internal/auth"
	"github.com/pulkitkochar/Book-Vaccine/internal/config"
	"github.com/pulkitkochar/Book-Vaccine/internal/cowin"
	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
)

// Scheduler states.
const (
	StateIdle    = "idle"
	StatePolling = "polling"
	StateCooling = "cooling"
	StateBooked  = "booked"
)

// SlotSource is the slice of the API client the poll loop reads from.
type SlotSource interface {
	CalendarByDistrict(ctx context.Context, districtID int, date string) ([]entities.Center, error)
	CalendarByPin(ctx context.Context, pincode, date string) ([]entities.Center, error)
}

// Booker attempts one reservation and reports whether it stuck.
type Booker interface {
	Attempt(ctx context.Context, match SlotMatch, beneficiaries []string, dose int, captchaToken string) (bool, error)
}

// Alerter is notified about qualifying sessions. Implementations must not
// block the loop for long; AlertService sends email and SMS asynchronously.
type Alerter interface {
	SlotAlert(match SlotMatch, actionable bool)
}

// Snapshot is a point-in-time view of the scheduler, served on /status.
type Snapshot struct {
	State          string    `json:"state"`
	TotalCycles    int       `json:"total_cycles"`
	CyclesInWindow int       `json:"cycles_in_window"`
	WindowStart    time.Time `json:"window_start"`
	LastPollAt     time.Time `json:"last_poll_at"`
	QualifyingSeen int       `json:"qualifying_seen"`
	LastError      string    `json:"last_error,omitempty"`
	SessionExpires time.Time `json:"session_expires"`
}

// PollOptions is everything a run needs, captured once at startup.
type PollOptions struct {
	Session       auth.Session
	SessionMaxAge time.Duration
	Criteria      entities.MatchCriteria
	Location      entities.LocationSelector
	Beneficiaries []string
	CaptchaToken  string
	Polling       config.PollingConfig
}

// PollService drives the query → match → book cycle and paces it so the
// server does not throttle the client. One sequential loop, no parallelism
// across centers or pincodes; a successful booking ends the run.
type PollService struct {
	API    SlotSource
	Booker Booker
	Alerts Alerter
	Log    *zap.SugaredLogger

	opts PollOptions

	// Bell receives the terminal bell when a qualifying session shows up.
	Bell io.Writer

	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	alerted map[string]bool

	mu   sync.Mutex
	snap Snapshot
}

func NewPollService(api SlotSource, booker Booker, alerts Alerter, log *zap.SugaredLogger, opts PollOptions) *PollService {
	return &PollService{
		API:     api,
		Booker:  booker,
		Alerts:  alerts,
		Log:     log,
		opts:    opts,
		Bell:    os.Stdout,
		now:     time.Now,
		sleep:   sleepCtx,
		alerted: make(map[string]bool),
		snap:    Snapshot{State: StateIdle},
	}
}

// Validate checks the inputs the loop cannot run without. Failing here is
// fatal; everything after this point is downgraded to warnings.
func (p *PollService) Validate() error {
	if len(p.opts.Beneficiaries) == 0 {
		return apperrors.NewConfigError("no beneficiaries selected; nothing to book")
	}
	loc, ok, conflict := p.opts.Location.Normalize()
	if conflict {
		return apperrors.NewConfigError("both district and pincodes configured; pick one location selector")
	}
	if !ok {
		return apperrors.NewConfigError("no usable location: set a district id or at least one six-digit pincode")
	}
	p.opts.Location = loc
	if p.opts.Session.Token == "" {
		return apperrors.NewConfigError("no auth token; run the login command first")
	}
	if p.opts.CaptchaToken == "" {
		return apperrors.NewConfigError("no captcha solution; a booking request cannot be submitted without one")
	}
	if p.opts.Criteria.Required != len(p.opts.Beneficiaries) {
		p.opts.Criteria.Required = len(p.opts.Beneficiaries)
	}
	return nil
}

// Run executes the poll loop until a booking succeeds or ctx is cancelled.
// A nil return means booked.
func (p *PollService) Run(ctx context.Context) error {
	if err := p.Validate(); err != nil {
		return err
	}

	cfg := p.opts.Polling
	windowStart := p.now()
	cycles := 0

	p.update(func(s *Snapshot) {
		s.State = StatePolling
		s.WindowStart = windowStart
		s.SessionExpires = p.opts.Session.ExpiresAt(p.opts.SessionMaxAge)
	})
	p.Log.Infof("Polling started: interval=%s burst=%d/%s dose=%d beneficiaries=%d",
		cfg.Interval, cfg.BurstLimit, cfg.BurstWindow, p.opts.Criteria.Dose, len(p.opts.Beneficiaries))

	for {
		if err := ctx.Err(); err != nil {
			p.update(func(s *Snapshot) { s.State = StateIdle })
			return err
		}

		booked := p.runCycle(ctx)
		cycles++
		metricCycles.Inc()
		p.update(func(s *Snapshot) {
			s.TotalCycles++
			s.CyclesInWindow = cycles
			s.LastPollAt = p.now()
		})
		if booked {
			p.update(func(s *Snapshot) { s.State = StateBooked })
			p.Log.Infof("Booked after %d cycles. Stopping.", p.Snapshot().TotalCycles)
			return nil
		}

		if cycles >= cfg.BurstLimit {
			wait := cfg.BurstWindow - p.now().Sub(windowStart)
			if wait > 0 {
				metricBurstPauses.Inc()
				p.update(func(s *Snapshot) { s.State = StateCooling })
				p.Log.Infof("Hit %d cycles inside %s; waiting %s to avoid server-side blocking", cycles, cfg.BurstWindow, wait.Round(time.Second))
				if err := p.sleep(ctx, wait); err != nil {
					p.update(func(s *Snapshot) { s.State = StateIdle })
					return err
				}
				p.update(func(s *Snapshot) { s.State = StatePolling })
			}
			windowStart = p.now()
			cycles = 0
			p.update(func(s *Snapshot) {
				s.WindowStart = windowStart
				s.CyclesInWindow = 0
			})
		}

		if p.opts.Session.Stale(p.now(), p.opts.SessionMaxAge) {
			// Advisory only: the token may still be accepted for reads.
			p.Log.Warnf("Auth token is older than %s (expires around %s); restart and log in again before booking",
				p.opts.SessionMaxAge, p.opts.Session.ExpiresAt(p.opts.SessionMaxAge).Format(time.Kitchen))
		}

		if err := p.sleep(ctx, cfg.Interval); err != nil {
			p.update(func(s *Snapshot) { s.State = StateIdle })
			return err
		}
	}
}

// runCycle queries each configured location unit in sequence. Booking
// success for any unit aborts the rest of the tick.
func (p *PollService) runCycle(ctx context.Context) bool {
	date := p.now().Format(cowin.DateFormat)

	if p.opts.Location.UsePincodes() {
		for i, pin := range p.opts.Location.Pincodes {
			if i > 0 {
				if err := p.sleep(ctx, p.opts.Polling.PinDelay); err != nil {
					return false
				}
			}
			pin := pin
			fetch := func(ctx context.Context) ([]entities.Center, error) {
				return p.API.CalendarByPin(ctx, pin, date)
			}
			if p.pollOnce(ctx, fetch, "pincode "+pin) {
				return true
			}
		}
		return false
	}

	fetch := func(ctx context.Context) ([]entities.Center, error) {
		return p.API.CalendarByDistrict(ctx, p.opts.Location.DistrictID, date)
	}
	return p.pollOnce(ctx, fetch, fmt.Sprintf("district %d", p.opts.Location.DistrictID))
}

func (p *PollService) pollOnce(ctx context.Context, fetch func(context.Context) ([]entities.Center, error), label string) bool {
	centers, err := fetch(ctx)
	if err != nil {
		p.noteError(err, label)
		return false
	}
	p.update(func(s *Snapshot) { s.LastError = "" })

	if len(centers) == 0 {
		p.Log.Infof("No centers reporting for %s", label)
		return false
	}

	result := MatchSessions(centers, p.opts.Criteria)
	qualifying := len(result.Actionable) + len(result.Watched)
	if qualifying > 0 {
		metricQualifying.Add(float64(qualifying))
		p.update(func(s *Snapshot) { s.QualifyingSeen += qualifying })
		fmt.Fprint(p.Bell, "\a")
	}

	for _, w := range result.Watched {
		p.Log.Infof("****** %s | %s | %s | capacity=%d dose%d=%d (does not match preferences)",
			w.Center.Name, w.Session.Date, w.Session.Vaccine,
			w.Session.AvailableCapacity, p.opts.Criteria.Dose, w.Session.DoseCapacity(p.opts.Criteria.Dose))
		p.alertOnce(w, false)
	}

	if !result.AnyAvailable {
		p.Log.Infof("No slot available in %d centers (%s)", len(centers), label)
		return false
	}

	for _, m := range result.Actionable {
		p.Log.Infof("****** %s | %s | %s | capacity=%d dose%d=%d",
			m.Center.Name, m.Session.Date, m.Session.Vaccine,
			m.Session.AvailableCapacity, p.opts.Criteria.Dose, m.Session.DoseCapacity(p.opts.Criteria.Dose))
		p.alertOnce(m, true)

		metricAttempts.Inc()
		booked, err := p.Booker.Attempt(ctx, m, p.opts.Beneficiaries, p.opts.Criteria.Dose, p.opts.CaptchaToken)
		if err != nil {
			p.noteError(err, "booking at "+m.Center.Name)
			continue
		}
		if booked {
			metricBooked.Inc()
			return true
		}
	}
	return false
}

// noteError downgrades loop errors to warnings per the taxonomy. Nothing
// that happens after startup is allowed to kill the loop.
func (p *PollService) noteError(err error, label string) {
	var (
		timeoutErr *apperrors.TimeoutError
		authErr    *apperrors.AuthError
		apiErr     *apperrors.APIError
	)
	switch {
	case errors.As(err, &timeoutErr):
		metricErrors.WithLabelValues("timeout").Inc()
		p.Log.Warnf("No response for %s within %s; treating as no centers", label, p.opts.Polling.Timeout)
	case errors.As(err, &authErr):
		metricErrors.WithLabelValues("auth").Inc()
		p.Log.Warnf("Token rejected while polling %s: %v. Restart and log in again", label, err)
	case errors.As(err, &apiErr):
		metricErrors.WithLabelValues("api").Inc()
		p.Log.Warnf("Bad response for %s: %v; treating as no centers", label, err)
	default:
		metricErrors.WithLabelValues("other").Inc()
		p.Log.Warnf("Error polling %s: %v", label, err)
	}
	p.update(func(s *Snapshot) { s.LastError = err.Error() })
}

// alertOnce fans a qualifying session out to the alerter, once per session
// per run so a 1s poll interval doesn't flood email and SMS.
func (p *PollService) alertOnce(match SlotMatch, actionable bool) {
	if p.Alerts == nil {
		return
	}
	key := match.Session.SessionID
	if p.alerted[key] {
		return
	}
	p.alerted[key] = true
	p.Alerts.SlotAlert(match, actionable)
}

// Snapshot returns a copy of the current scheduler state.
func (p *PollService) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

func (p *PollService) update(fn func(*Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.snap)
}

// sleepCtx waits for d or until ctx is cancelled, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
