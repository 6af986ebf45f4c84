package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultNotified  = "notified"
	ResultUnchanged = "unchanged"
	ResultStale     = "stale"
	ResultFailed    = "failed"
)

// Collector counts poll cycles and delivered digests.
type Collector struct {
	cycles        *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	cycles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "substitution_cycles_total",
		Help: "Poll cycles by weekday and result",
	}, []string{"weekday", "result"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "substitution_notifications_total",
		Help: "Digests delivered by weekday",
	}, []string{"weekday"})

	var err error

	if cycles, err = register(reg, cycles); err != nil {
		return nil, err
	}

	if notifications, err = register(reg, notifications); err != nil {
		return nil, err
	}

	return &Collector{cycles: cycles, notifications: notifications}, nil
}

func register(reg prometheus.Registerer, counter *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError

		if errors.As(err, &are) {
			return are.ExistingCollector.(*prometheus.CounterVec), nil
		}

		return nil, err
	}

	return counter, nil
}

func (c *Collector) RecordCycle(weekday string, result string) {
	if c == nil {
		return
	}

	c.cycles.WithLabelValues(weekday, result).Inc()
}

func (c *Collector) RecordNotification(weekday string) {
	if c == nil {
		return
	}

	c.notifications.WithLabelValues(weekday).Inc()
}

// Serve exposes the default gatherer on addr until the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return http.ListenAndServe(addr, mux)
}
