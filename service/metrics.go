package service

import "github.com/prometheus/client_golang/prometheus"

var accrualTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_accrual_total",
		Help: "Commission accrual attempts by result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(accrualTotal)
}
