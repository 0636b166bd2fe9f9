package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
	apperrors "github.com/pulkitkochar/Book-Vaccine/internal/errors"
)

// Scheduler is the slice of the API client a booking attempt needs.
type Scheduler interface {
	Schedule(ctx context.Context, booking entities.BookingRequest) (entities.BookingResult, error)
}

// BookingService submits reservation requests. A success is terminal for
// the run; a rejection is surfaced and the poll loop carries on.
type BookingService struct {
	API Scheduler
	Log *zap.SugaredLogger
}

func NewBookingService(api Scheduler, log *zap.SugaredLogger) *BookingService {
	return &BookingService{API: api, Log: log}
}

// Attempt books all beneficiaries into the matched session in one request,
// taking the last reported slot time. Returns true only on a 200/201.
func (s *BookingService) Attempt(ctx context.Context, match SlotMatch, beneficiaries []string, dose int, captchaToken string) (bool, error) {
	slot := match.Session.LastSlot()
	if slot == "" {
		s.Log.Warnf("Session %s at %s reports no slot times, skipping booking", match.Session.SessionID, match.Center.Name)
		return false, nil
	}

	req := entities.BookingRequest{
		CenterID:      match.Center.CenterID,
		SessionID:     match.Session.SessionID,
		Beneficiaries: beneficiaries,
		Slot:          slot,
		Captcha:       captchaToken,
		Dose:          dose,
	}

	s.Log.Infof("Attempting booking: center=%s session=%s slot=%s dose=%d beneficiaries=%d",
		match.Center.Name, match.Session.SessionID, slot, dose, len(beneficiaries))

	result, err := s.API.Schedule(ctx, req)
	if err != nil {
		var bookErr *apperrors.BookingError
		if errors.As(err, &bookErr) {
			// The server's reason is the only diagnosis the user gets.
			s.Log.Warnf("Booking rejected (status %d): %s", bookErr.Status, bookErr.Body)
			return false, nil
		}
		return false, err
	}

	s.Log.Infof("Booking confirmed (status %d): %s", result.Status, result.Body)
	return true, nil
}
