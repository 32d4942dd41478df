package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fermano/TennisPulse/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	tierDivisor        = 4
)

// Player archetype cases. Each archetype lands its metrics in a different
// band of the classification thresholds so the seeded data exercises every
// coaching status.
const (
	caseElitePlayer     = 0
	caseSolidPlayer     = 1
	caseAveragePlayer   = 2
	caseStrugglingLevel = 3
)

// Possible final scores for generated matches.
var finalScores = []string{
	"6-4 6-3",
	"7-6 3-6 6-4",
	"6-2 6-2",
	"6-7 7-5 7-6",
	"6-3 4-6 6-1",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random int in [0, limit).
func randomIndex(limit int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	return int(n.Int64())
}

// inRange returns a random float64 in [low, high).
func inRange(low, high float64) float64 {
	return low + getRandomFloat()*(high-low)
}

// generateEvents creates completed-match events drawn from a shared player
// pool so the same players accumulate wins and monthly history.
func generateEvents(ctx context.Context, config *Config, stats *Stats) ([]Event, error) {
	logger.Get().Info(ctx, "generating match events",
		logger.Int("numMatches", config.NumMatches),
		logger.Int("playerPool", config.NumPlayers))

	players := make([]string, config.NumPlayers)
	for i := range players {
		players[i] = "player-" + strconv.Itoa(i+1) + "-" + uuid.New().String()[:8]
	}

	events := make([]Event, config.NumMatches)
	for i := range events {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		events[i] = generateSingleEvent(players)
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated events successfully", logger.Int("count", len(events)))

	return events, nil
}

// generateSingleEvent builds one completed match between two distinct players
// from the pool. Completion times are spread over the past year so monthly
// timelines and calendar windows have data.
func generateSingleEvent(players []string) Event {
	p1 := randomIndex(len(players))
	p2 := randomIndex(len(players))
	for p2 == p1 {
		p2 = randomIndex(len(players))
	}

	winner := players[p1]
	if getRandomFloat() < 0.5 {
		winner = players[p2]
	}

	occurredAt := time.Now().UTC().AddDate(0, 0, -randomIndex(365))

	return Event{
		MatchID:    "match-" + uuid.New().String(),
		WinnerID:   winner,
		FinalScore: finalScores[randomIndex(len(finalScores))],
		OccurredAt: occurredAt.Format(time.RFC3339),
		PlayerStats: []PlayerStats{
			generatePlayerStats(players[p1]),
			generatePlayerStats(players[p2]),
		},
	}
}

// generatePlayerStats rolls an archetype and fills every metric from its band.
func generatePlayerStats(playerID string) PlayerStats {
	n, _ := rand.Int(rand.Reader, big.NewInt(tierDivisor))
	switch n.Int64() {
	case caseElitePlayer:
		return PlayerStats{
			PlayerID:               playerID,
			FirstServeIn:           inRange(70, 85),
			FirstServePointsWon:    inRange(75, 90),
			SecondServePointsWon:   inRange(60, 75),
			UnforcedErrorsForehand: randomIndex(3),
			UnforcedErrorsBackhand: randomIndex(3),
			Winners:                25 + randomIndex(15),
			BreakPointConversion:   inRange(60, 85),
			BreakPointsSaved:       inRange(65, 90),
			NetPointsWon:           inRange(70, 90),
			LongRallyWinRate:       inRange(60, 80),
		}
	case caseSolidPlayer:
		return PlayerStats{
			PlayerID:               playerID,
			FirstServeIn:           inRange(60, 70),
			FirstServePointsWon:    inRange(65, 75),
			SecondServePointsWon:   inRange(50, 60),
			UnforcedErrorsForehand: 3 + randomIndex(3),
			UnforcedErrorsBackhand: 3 + randomIndex(3),
			Winners:                15 + randomIndex(10),
			BreakPointConversion:   inRange(40, 60),
			BreakPointsSaved:       inRange(45, 65),
			NetPointsWon:           inRange(60, 70),
			LongRallyWinRate:       inRange(45, 60),
		}
	case caseAveragePlayer:
		return PlayerStats{
			PlayerID:               playerID,
			FirstServeIn:           inRange(50, 60),
			FirstServePointsWon:    inRange(60, 65),
			SecondServePointsWon:   inRange(40, 50),
			UnforcedErrorsForehand: 5 + randomIndex(4),
			UnforcedErrorsBackhand: 5 + randomIndex(4),
			Winners:                8 + randomIndex(7),
			BreakPointConversion:   inRange(25, 40),
			BreakPointsSaved:       inRange(25, 45),
			NetPointsWon:           inRange(50, 60),
			LongRallyWinRate:       inRange(35, 45),
		}
	default:
		return PlayerStats{
			PlayerID:               playerID,
			FirstServeIn:           inRange(30, 50),
			FirstServePointsWon:    inRange(40, 60),
			SecondServePointsWon:   inRange(20, 40),
			UnforcedErrorsForehand: 10 + randomIndex(10),
			UnforcedErrorsBackhand: 10 + randomIndex(10),
			Winners:                randomIndex(8),
			BreakPointConversion:   inRange(5, 25),
			BreakPointsSaved:       inRange(5, 25),
			NetPointsWon:           inRange(30, 50),
			LongRallyWinRate:       inRange(15, 35),
		}
	}
}
