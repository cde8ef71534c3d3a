package dto

import "time"

// TelemetrySnapshot summarises process counters for the health endpoint.
type TelemetrySnapshot struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"avg_request_duration_ms"`
	BoardsResolved           uint64    `json:"boards_resolved"`
	ExerciseTransitions      uint64    `json:"exercise_transitions"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
