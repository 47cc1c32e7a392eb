package ports

import "moonlight/internal/domain/hazard"

// HuntMetrics records hunt outcomes for the ops KPI snapshot.
type HuntMetrics interface {
	RecordHunt(outcome string)
	RecordRejection(reason string)
}

// WeatherMetrics records scheduler transitions.
type WeatherMetrics interface {
	RecordTransition(kind hazard.Kind)
}
