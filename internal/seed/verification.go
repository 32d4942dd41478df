package seed

import (
	"fmt"
	"log"
)

// verifyResults cross-checks the rankings returned by the service against
// the events that were just submitted.
func verifyResults(events []Event, wins []WinsEntry, performance []PerformanceEntry) error {
	log.Println("verifying results")

	if len(wins) == 0 && len(performance) == 0 {
		return fmt.Errorf("no rankings to verify")
	}

	// Per-match events bypass the match registry, so winner names resolve to
	// the unknown sentinel; only counts and ordering are checked here.
	expected := expectedWinCounts(events)

	for i, entry := range wins {
		if i > 0 && entry.Wins > wins[i-1].Wins {
			return fmt.Errorf("wins ranking not sorted: entry %d has more wins than entry %d", i, i-1)
		}
		if want, ok := expected[entry.PlayerID]; ok && entry.Wins > want {
			return fmt.Errorf("player %s reported %d wins, submitted only %d", entry.PlayerID, entry.Wins, want)
		}
	}

	for i, entry := range performance {
		if i > 0 && entry.AverageScore > performance[i-1].AverageScore {
			return fmt.Errorf("performance ranking not sorted: entry %d outscores entry %d", i, i-1)
		}
		if entry.AverageScore < 0 || entry.AverageScore > 3 {
			return fmt.Errorf("player %s has average score %.3f outside [0, 3]", entry.PlayerID, entry.AverageScore)
		}
	}

	displayTopPerformers(wins, performance)

	log.Println("result verification completed")
	return nil
}

// expectedWinCounts tallies winners across the generated events.
func expectedWinCounts(events []Event) map[string]int64 {
	counts := make(map[string]int64, len(events))
	for _, event := range events {
		if event.WinnerID != "" {
			counts[event.WinnerID]++
		}
	}
	return counts
}

// displayTopPerformers shows the leaders of both rankings.
func displayTopPerformers(wins []WinsEntry, performance []PerformanceEntry) {
	topN := 10

	winsTop := topN
	if len(wins) < winsTop {
		winsTop = len(wins)
	}
	log.Printf("top %d by wins:", winsTop)
	for i := 0; i < winsTop; i++ {
		log.Printf("   %d. %s - %d wins", i+1, wins[i].PlayerID, wins[i].Wins)
	}

	perfTop := topN
	if len(performance) < perfTop {
		perfTop = len(performance)
	}
	log.Printf("top %d by performance:", perfTop)
	for i := 0; i < perfTop; i++ {
		entry := performance[i]
		log.Printf("   %d. %s - avg %.3f over %d matches", i+1, entry.PlayerID, entry.AverageScore, entry.MatchesCount)
	}
}
