package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ToggleConflicts counts toggle operations that lost a serialization race
// and were surfaced to the caller as retryable conflicts.
var ToggleConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "snapgram_toggle_conflicts_total",
	Help: "Total number of toggle operations rejected due to concurrent mutation",
}, []string{"entity"})

// MessagesAppended counts messages committed to conversation logs.
var MessagesAppended = promauto.NewCounter(prometheus.CounterOpts{
	Name: "snapgram_messages_appended_total",
	Help: "Total number of direct messages appended",
})
