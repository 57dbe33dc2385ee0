// ABOUTME: Prometheus counters for storage activity
// ABOUTME: Registered on the default registry; exported by serving binaries
package sqlite

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goals_storage_queries_total",
		Help: "Statements issued against the goals database, by operation.",
	}, []string{"op"})

	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goals_storage_mutations_total",
		Help: "Row mutations applied through the write coordinator, by table.",
	}, []string{"table"})

	archivesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goals_storage_archives_total",
		Help: "Archive snapshots written before updates and deletes, by reason.",
	}, []string{"reason"})
)
