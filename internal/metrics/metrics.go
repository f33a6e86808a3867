package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelOperator = "operator"
	LabelSide     = "side"
	LabelStore    = "store"
)

const namespace = "tandem"

// Join operator metrics
var (
	// RecordsReceived counts records delivered to an operator, per side
	RecordsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "join",
		Name:      "records_received_total",
		Help:      "Total number of records delivered to a join operator",
	}, []string{LabelOperator, LabelSide})

	// RecordsEmitted counts joined records handed to the sink, labeled by
	// the side whose arrival triggered the emission
	RecordsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "join",
		Name:      "records_emitted_total",
		Help:      "Total number of joined records emitted by a join operator",
	}, []string{LabelOperator, LabelSide})

	// ContractViolations counts records rejected before reaching a store
	ContractViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "join",
		Name:      "contract_violations_total",
		Help:      "Total number of records rejected for an invalid key or timestamp",
	}, []string{LabelOperator, LabelSide})
)

// Window store metrics
var (
	// EntriesEvicted counts entries dropped by retention
	EntriesEvicted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "window",
		Name:      "entries_evicted_total",
		Help:      "Total number of window entries evicted by retention",
	}, []string{LabelStore})

	// Entries tracks the entries currently held by a store, including any
	// that have expired but not yet been swept
	Entries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "window",
		Name:      "entries",
		Help:      "Number of entries held by a window store",
	}, []string{LabelStore})
)
