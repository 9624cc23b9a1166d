package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bizchess/internal/engine"
)

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeTimeout  = "timeout"
	OutcomeNoMoves  = "no_moves"
	OutcomeError    = "error"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizchess_searches_total",
		Help: "Best-move searches by outcome",
	}, []string{"outcome"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bizchess_search_duration_seconds",
		Help:    "Wall time of a best-move search",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"depth"})

	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bizchess_search_nodes",
		Help:    "Minimax nodes visited per search",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	})

	searchCutoffs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bizchess_search_cutoffs_total",
		Help: "Alpha-beta cut-offs across all searches",
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizchess_result_cache_lookups_total",
		Help: "Result cache lookups by result",
	}, []string{"result"})

	playTurns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizchess_play_turns_total",
		Help: "Human turns processed in play sessions by result",
	}, []string{"result"})
)

func ObserveSearch(depth int, stats engine.SearchStats, elapsed time.Duration, outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
	searchDuration.WithLabelValues(depthLabel(depth)).Observe(elapsed.Seconds())
	searchNodes.Observe(float64(stats.Nodes))
	searchCutoffs.Add(float64(stats.Cutoffs))
}

func SearchFailed(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

func CacheHit() {
	cacheLookups.WithLabelValues("hit").Inc()
}

func CacheMiss() {
	cacheLookups.WithLabelValues("miss").Inc()
}

func PlayTurn(result string) {
	playTurns.WithLabelValues(result).Inc()
}

func depthLabel(depth int) string {
	if depth > 9 {
		return "10+"
	}
	return strconv.Itoa(depth)
}
