package service

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pulkitkochar/Book-Vaccine/internal/config"
)

func TestSlotAlertDoesNotBlockOnSlowTransports(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	emailSent := make(chan string, 1)
	smsSent := make(chan string, 1)

	s := NewAlertService(config.NotifyConfig{
		Email: "alerts@example.com",
		Phone: "+911234567890",
	}, zap.NewNop().Sugar())
	s.sendEmail = func(to, toName, subject, body string) error {
		<-release
		emailSent <- to
		return nil
	}
	s.sendSMS = func(to, body string) error {
		<-release
		smsSent <- to
		return nil
	}

	match := SlotMatch{
		Center:  center("Apollo Clinic"),
		Session: session("s1", "COVAXIN", 18, 4, 4, 0),
	}

	returned := make(chan struct{})
	go func() {
		s.SlotAlert(match, true)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("SlotAlert blocked on the sends")
	}

	close(release)
	for _, ch := range []chan string{emailSent, smsSent} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("a send never completed after SlotAlert returned")
		}
	}
}

func TestSlotAlertSkipsUnconfiguredDestinations(t *testing.T) {
	t.Parallel()

	s := NewAlertService(config.NotifyConfig{}, zap.NewNop().Sugar())
	called := make(chan struct{}, 2)
	s.sendEmail = func(to, toName, subject, body string) error {
		called <- struct{}{}
		return nil
	}
	s.sendSMS = func(to, body string) error {
		called <- struct{}{}
		return nil
	}

	s.SlotAlert(SlotMatch{
		Center:  center("Apollo Clinic"),
		Session: session("s1", "COVAXIN", 18, 4, 4, 0),
	}, false)

	select {
	case <-called:
		t.Fatal("send attempted with no destination configured")
	case <-time.After(50 * time.Millisecond):
	}
}
