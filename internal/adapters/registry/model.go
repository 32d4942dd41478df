package registry

import "time"

// MatchStatus is the match lifecycle state.
type MatchStatus string

// Match lifecycle states.
const (
	StatusScheduled  MatchStatus = "SCHEDULED"
	StatusInProgress MatchStatus = "IN_PROGRESS"
	StatusCompleted  MatchStatus = "COMPLETED"
	StatusCancelled  MatchStatus = "CANCELLED"
)

// Valid reports whether s is a known lifecycle state.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Club is a registered tennis club.
type Club struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	City           string    `json:"city,omitempty"`
	Country        string    `json:"country,omitempty"`
	DefaultSurface string    `json:"defaultSurface,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Player is a registered player.
type Player struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Handedness string    `json:"handedness,omitempty"` // LEFT or RIGHT
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Match is a scheduled or played match between two players at a club.
type Match struct {
	ID         string      `json:"id"`
	ClubID     string      `json:"clubId"`
	Player1ID  string      `json:"player1Id"`
	Player2ID  string      `json:"player2Id"`
	WinnerID   string      `json:"winnerId,omitempty"`
	Status     MatchStatus `json:"status"`
	FinalScore string      `json:"finalScore,omitempty"`
	StartTime  time.Time   `json:"startTime,omitzero"`
	EndTime    time.Time   `json:"endTime,omitzero"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// WinCount is one row of the wins ranking source data.
type WinCount struct {
	PlayerID   string
	PlayerName string
	Wins       int64
}
