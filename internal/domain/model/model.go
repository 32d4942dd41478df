// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/fermano/TennisPulse/internal/domain/metric"
)

// PlayerStats is one player's measured performance for one match, exactly
// as emitted by the match owner at completion. Immutable once received.
type PlayerStats struct {
	PlayerID               string  `json:"playerId"`
	FirstServeIn           float64 `json:"firstServeIn"`
	FirstServePointsWon    float64 `json:"firstServePointsWon"`
	SecondServePointsWon   float64 `json:"secondServePointsWon"`
	UnforcedErrorsForehand int     `json:"unforcedErrorsForehand"`
	UnforcedErrorsBackhand int     `json:"unforcedErrorsBackhand"`
	Winners                int     `json:"winners"`
	BreakPointConversion   float64 `json:"breakPointConversion"`
	BreakPointsSaved       float64 `json:"breakPointsSaved"`
	NetPointsWon           float64 `json:"netPointsWon"`
	LongRallyWinRate       float64 `json:"longRallyWinRate"`
}

// RawMetrics flattens the stats payload into the metric map consumed by the
// rule engine.
func (s PlayerStats) RawMetrics() map[metric.Kind]float64 {
	return map[metric.Kind]float64{
		metric.FirstServeIn:           s.FirstServeIn,
		metric.FirstServePointsWon:    s.FirstServePointsWon,
		metric.SecondServePointsWon:   s.SecondServePointsWon,
		metric.UnforcedErrorsForehand: float64(s.UnforcedErrorsForehand),
		metric.UnforcedErrorsBackhand: float64(s.UnforcedErrorsBackhand),
		metric.Winners:                float64(s.Winners),
		metric.BreakPointConversion:   s.BreakPointConversion,
		metric.BreakPointsSaved:       s.BreakPointsSaved,
		metric.NetPointsWon:           s.NetPointsWon,
		metric.LongRallyWinRate:       s.LongRallyWinRate,
	}
}

// MatchCompletedEvent is the inbound event consumed by the ingestion
// pipeline. Delivery is at-least-once; processing must be idempotent.
type MatchCompletedEvent struct {
	MatchID     string        `json:"matchId"`
	WinnerID    string        `json:"winnerId"`
	FinalScore  string        `json:"finalScore"`
	OccurredAt  time.Time     `json:"occurredAt"`
	PlayerStats []PlayerStats `json:"playerStats"`
}

// ClassifiedMetric pairs a raw metric value with its classification tier.
type ClassifiedMetric struct {
	Value  float64       `json:"value"`
	Status metric.Status `json:"status"`
}

// Tip is one actionable coaching suggestion tied to a metric.
type Tip struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Metric  metric.Kind `json:"metric"`
}

// Record is the persisted analytics unit: one per (match, player) pair.
// Created only by the ingestion worker and never mutated afterwards.
type Record struct {
	ID             string                               `json:"id"` // matchId:playerId
	MatchID        string                               `json:"matchId"`
	PlayerID       string                               `json:"playerId"`
	WinnerID       string                               `json:"winnerId,omitempty"`
	FinalScore     string                               `json:"finalScore,omitempty"`
	RawStats       PlayerStats                          `json:"rawStats"`
	Metrics        map[metric.Kind]ClassifiedMetric     `json:"metrics"`
	CoachingStatus metric.CoachingStatus                `json:"coachingStatus"`
	Tips           []Tip                                `json:"tips"`
	EngineVersion  string                               `json:"engineVersion"`
	CreatedAt      time.Time                            `json:"createdAt"`
}

// RecordID builds the composite identity used to key the analytics store.
func RecordID(matchID, playerID string) string {
	return matchID + ":" + playerID
}
