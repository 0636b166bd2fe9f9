package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulkitkochar/Book-Vaccine/internal/api"
	"github.com/pulkitkochar/Book-Vaccine/internal/auth"
	"github.com/pulkitkochar/Book-Vaccine/internal/captcha"
	"github.com/pulkitkochar/Book-Vaccine/internal/config"
	"github.com/pulkitkochar/Book-Vaccine/internal/cowin"
	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
	"github.com/pulkitkochar/Book-Vaccine/internal/service"
	"github.com/pulkitkochar/Book-Vaccine/internal/utils"
)

func runCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll for matching slots and book the first one that fits",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPoller(ctx)
		},
	}
}

func runPoller(ctx context.Context) error {
	log := utils.GetLogger().Sugar()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client := cowin.NewClient(cfg.Polling.Timeout)
	store := auth.NewStore(cfg.Session.StateFile)

	sess, err := resolveSession(ctx, client, store, cfg)
	if err != nil {
		return err
	}
	client.SetToken(sess.Token)

	// Preferences not pinned in the config are collected interactively,
	// once, before the loop starts.
	vaccine := cfg.Booking.VaccinePreference
	if vaccine == "" {
		vaccine = promptVaccinePreference()
	}
	center := cfg.Booking.CenterPreference
	if center == "" {
		center = promptCenterPreference()
	}

	location := entities.LocationSelector{
		DistrictID: cfg.Location.DistrictID,
		Pincodes:   cfg.Location.Pincodes,
	}
	if _, ok, conflict := location.Normalize(); !ok && !conflict {
		districtID, err := selectDistrict(ctx, client)
		if err != nil {
			return err
		}
		location = entities.LocationSelector{DistrictID: districtID}
	}

	beneficiaries := cfg.Booking.Beneficiaries
	if len(beneficiaries) == 0 {
		if beneficiaries, err = selectBeneficiaries(ctx, client); err != nil {
			return err
		}
	}

	// One captcha per run. The token is consumed by the first accepted
	// booking; a rejected attempt keeps polling with the same token.
	provisioner := captcha.NewProvisioner(client, captcha.NewPromptSolver("."))
	captchaToken, err := provisioner.Token(ctx)
	if err != nil {
		return err
	}

	booker := service.NewBookingService(client, log)
	alerts := service.NewAlertService(cfg.Notify, log)
	poller := service.NewPollService(client, booker, alerts, log, service.PollOptions{
		Session:       sess,
		SessionMaxAge: cfg.Session.MaxAge,
		Criteria: entities.MatchCriteria{
			Dose:              cfg.Booking.Dose,
			Required:          len(beneficiaries),
			VaccinePreference: vaccine,
			CenterPreference:  center,
		},
		Location:      location,
		Beneficiaries: beneficiaries,
		CaptchaToken:  captchaToken,
		Polling:       cfg.Polling,
	})

	if cfg.Status.Addr != "" {
		go func() {
			handler := api.NewStatusHandler(poller)
			log.Infof("Status server listening on %s", cfg.Status.Addr)
			if err := http.ListenAndServe(cfg.Status.Addr, handler.Router()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warnf("Status server error: %v", err)
			}
		}()
	}

	jobs := service.NewJobService(poller, store, sess, log)
	if err := jobs.Start(); err != nil {
		return err
	}
	defer jobs.Stop()

	if err := poller.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Infof("Stopped.")
			return nil
		}
		return err
	}
	log.Infof("Booking confirmed. Check the CoWIN portal for the appointment slip.")
	return nil
}

// resolveSession reuses a stored token when it is still fresh, otherwise
// runs the OTP login and persists the new session.
func resolveSession(ctx context.Context, client *cowin.Client, store *auth.Store, cfg *config.Config) (auth.Session, error) {
	sess, ok, err := store.Load()
	if err != nil {
		return auth.Session{}, err
	}
	if ok && !sess.Stale(time.Now(), cfg.Session.MaxAge) {
		if !promptYesNo("Reuse the stored token from the last run? (y/n Default y): ", true) {
			ok = false
		}
	} else {
		ok = false
	}
	if !ok {
		if sess, err = loginWithOTP(ctx, client); err != nil {
			return auth.Session{}, err
		}
		if err := store.Save(sess); err != nil {
			return auth.Session{}, err
		}
	}
	return sess, nil
}
