package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		membershipsActivatedTotal,
		membershipsExpiredTotal,
	)
}

var (
	membershipsActivatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberships_activated_total",
			Help: "Memberships activated by successful captures.",
		},
	)

	membershipsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "memberships_expired_total",
			Help: "Memberships flipped to expired (capture path + expiry worker).",
		},
	)
)

func IncMembershipsActivated() { membershipsActivatedTotal.Inc() }

func IncMembershipsExpired(n int) { membershipsExpiredTotal.Add(float64(n)) }
