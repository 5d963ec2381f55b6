package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DonationsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bloodbank", Name: "donations_submitted_total", Help: "Number of donation submissions by eligibility verdict."},
		[]string{"verdict"},
	)
	DonationStoreErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "bloodbank", Name: "donation_store_errors_total", Help: "Number of failed donation store operations."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bloodbank", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bloodbank", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DonationsSubmitted)
	reg.MustRegister(DonationStoreErrors)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
