package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumMatches int           // Number of completed matches to generate
	NumPlayers int           // Size of the player pool the matches draw from
	TopN       int           // Number of ranking entries to fetch afterwards
	Workers    int           // Number of concurrent submit workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for generated events
	LogFile    string        // Log file for run output
	Verbose    bool          // Enable verbose logging
}

// PlayerStats mirrors the per-player stats payload accepted by POST /events.
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

// Event mirrors the match-completed payload accepted by POST /events.
type Event struct {
	MatchID     string        `json:"matchId"`
	WinnerID    string        `json:"winnerId"`
	FinalScore  string        `json:"finalScore"`
	OccurredAt  string        `json:"occurredAt"`
	PlayerStats []PlayerStats `json:"playerStats"`
}

// WinsEntry mirrors one entry of GET /rankings/wins.
type WinsEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Wins       int64  `json:"wins"`
}

// PerformanceEntry mirrors one entry of GET /rankings/performance.
type PerformanceEntry struct {
	PlayerID     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	AverageScore float64 `json:"averageScore"`
	MatchesCount int     `json:"matchesCount"`
}

// AckResponse represents the response from event submission.
type AckResponse struct {
	Status string `json:"status"`
}

// Stats holds run statistics.
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsFailed     int
	PerformanceRows  int
	WinsRows         int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
