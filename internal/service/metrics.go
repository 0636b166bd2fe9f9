package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exposed on the status server's /metrics endpoint.
var (
	metricCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookvaccine_poll_cycles_total",
		Help: "Completed poll cycles.",
	})
	metricQualifying = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookvaccine_qualifying_sessions_total",
		Help: "Sessions that passed the age and capacity gates.",
	})
	metricAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookvaccine_booking_attempts_total",
		Help: "Booking requests submitted.",
	})
	metricBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookvaccine_bookings_total",
		Help: "Confirmed bookings.",
	})
	metricErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookvaccine_poll_errors_total",
		Help: "Non-fatal errors swallowed by the poll loop.",
	}, []string{"kind"})
	metricBurstPauses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookvaccine_burst_pauses_total",
		Help: "Times the rate governor paused until the window elapsed.",
	})
)
