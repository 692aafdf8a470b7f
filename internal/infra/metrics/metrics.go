// Package metrics считает записи одного запуска и сбрасывает их в textfile
// для node_exporter: разовой утилите некуда отдавать /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Run struct {
	reg *prometheus.Registry

	RecordsRead prometheus.Counter
	RecordsKept prometheus.Counter
	SQLRows     prometheus.Counter
	lastSuccess prometheus.Gauge
}

func NewRun(tool string) *Run {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"tool": tool}

	r := &Run{
		reg: reg,
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock_migrate", Name: "records_read_total",
			Help: "Records decoded from the input file.", ConstLabels: labels,
		}),
		RecordsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock_migrate", Name: "records_kept_total",
			Help: "Records left after filtering.", ConstLabels: labels,
		}),
		SQLRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stock_migrate", Name: "sql_rows_total",
			Help: "Value tuples written to the SQL output.", ConstLabels: labels,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stock_migrate", Name: "last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.", ConstLabels: labels,
		}),
	}
	reg.MustRegister(r.RecordsRead, r.RecordsKept, r.SQLRows, r.lastSuccess)
	return r
}

// Flush отмечает успешный запуск и пишет метрики в path. При пустом path ничего не делает.
func (r *Run) Flush(path string) error {
	if path == "" {
		return nil
	}
	r.lastSuccess.SetToCurrentTime()
	return prometheus.WriteToTextfile(path, r.reg)
}
