package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pulkitkochar/Book-Vaccine/internal/config"
)

// AlertService composes and fans out slot alerts. Both email and SMS go out
// asynchronously so a slow SendGrid or Twilio call never delays a booking
// attempt.
type AlertService struct {
	Cfg config.NotifyConfig
	Log *zap.SugaredLogger

	sendEmail func(to, toName, subject, body string) error
	sendSMS   func(to, body string) error
}

func NewAlertService(cfg config.NotifyConfig, log *zap.SugaredLogger) *AlertService {
	return &AlertService{
		Cfg:       cfg,
		Log:       log,
		sendEmail: SendEmailWithSendGrid,
		sendSMS:   SendSMS,
	}
}

func (s *AlertService) SlotAlert(match SlotMatch, actionable bool) {
	kind := "Bookable slot found"
	if !actionable {
		kind = "Slot available (outside your preferences)"
	}

	subject := fmt.Sprintf("%s: %s on %s", kind, match.Center.Name, match.Session.Date)
	body := fmt.Sprintf(
		"%s\n\n"+
			"Center: %s, %s (%s)\n"+
			"Date: %s\n"+
			"Vaccine: %s\n"+
			"Available capacity: %d (dose1=%d, dose2=%d)\n",
		kind,
		match.Center.Name, match.Center.DistrictName, match.Center.StateName,
		match.Session.Date,
		match.Session.Vaccine,
		match.Session.AvailableCapacity,
		match.Session.AvailableCapacityDose1,
		match.Session.AvailableCapacityDose2,
	)

	if s.Cfg.Email != "" {
		go func(to, subject, body string) {
			if err := s.sendEmail(to, "", subject, body); err != nil {
				s.Log.Warnf("Email alert for %s failed: %v", match.Center.Name, err)
			}
		}(s.Cfg.Email, subject, body)
	}

	if s.Cfg.Phone != "" {
		sms := fmt.Sprintf("BookVaccine: %s: %s, %s, %s. Capacity %d.",
			kind, match.Center.Name, match.Session.Date, match.Session.Vaccine, match.Session.AvailableCapacity)
		go func(to, body string) {
			if err := s.sendSMS(to, body); err != nil {
				s.Log.Warnf("SMS alert for %s failed: %v", match.Center.Name, err)
			}
		}(s.Cfg.Phone, sms)
	}
}
