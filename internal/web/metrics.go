package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caixa2alterdata_uploads_total",
		Help: "Number of upload batches processed.",
	})
	rowsExported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caixa2alterdata_rows_exported_total",
		Help: "Number of standardized rows exported across all runs.",
	})
	runsWithIssues = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caixa2alterdata_runs_with_issues_total",
		Help: "Number of runs that recorded at least one inconsistency.",
	})
)
