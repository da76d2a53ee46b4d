package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoansCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "Total loans created",
		},
	)
	LoansReturned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "Total loans returned",
		},
	)
	LoansOutOfStock = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_out_of_stock_total",
			Help: "Total loan creations rejected for lack of copies",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(LoansCreated)
	prometheus.MustRegister(LoansReturned)
	prometheus.MustRegister(LoansOutOfStock)
	prometheus.MustRegister(WorkerQueueDepth)
}
