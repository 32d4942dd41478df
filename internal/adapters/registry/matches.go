package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/pkg/logger"
)

// CreateMatch schedules a match between two registered players at a club.
func (r *Registry) CreateMatch(ctx context.Context, clubID, player1ID, player2ID string) (Match, error) {
	if _, err := r.GetClub(ctx, clubID); err != nil {
		return Match{}, err
	}
	if _, err := r.GetPlayer(ctx, player1ID); err != nil {
		return Match{}, err
	}
	if _, err := r.GetPlayer(ctx, player2ID); err != nil {
		return Match{}, err
	}

	now := r.now()
	match := Match{
		ID:        r.idgen(),
		ClubID:    clubID,
		Player1ID: player1ID,
		Player2ID: player2ID,
		Status:    StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO matches(id, club_id, player1_id, player2_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		match.ID, match.ClubID, match.Player1ID, match.Player2ID, string(match.Status),
		formatTime(match.CreatedAt), formatTime(match.UpdatedAt),
	)
	if err != nil {
		return Match{}, fmt.Errorf("insert match: %w", err)
	}

	r.logger.Info(ctx, "match created",
		logger.String("matchID", match.ID),
		logger.String("clubID", clubID),
	)
	return match, nil
}

// GetMatch returns a match by id.
func (r *Registry) GetMatch(ctx context.Context, id string) (Match, error) {
	row := r.conn.QueryRowContext(ctx, matchSelect+` WHERE id = ? AND deleted_at IS NULL`, id)
	return scanMatch(row)
}

// ListMatches returns all live matches.
func (r *Registry) ListMatches(ctx context.Context) ([]Match, error) {
	rows, err := r.conn.QueryContext(ctx, matchSelect+` WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

// MatchesByPlayer returns all live matches a player took part in.
func (r *Registry) MatchesByPlayer(ctx context.Context, playerID string) ([]Match, error) {
	rows, err := r.conn.QueryContext(ctx,
		matchSelect+` WHERE (player1_id = ? OR player2_id = ?) AND deleted_at IS NULL ORDER BY created_at`,
		playerID, playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("matches by player: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

// StatusUpdate carries a requested lifecycle transition. Winner, final score
// and stats only apply when completing a match.
type StatusUpdate struct {
	Status     MatchStatus
	WinnerID   string
	FinalScore string
	Stats      []model.PlayerStats
}

// UpdateMatchStatus transitions a match through its lifecycle. Completing a
// match requires a winner and final score, stamps the end time, and publishes
// a MatchCompletedEvent when a stats payload was supplied. A completion
// without stats is allowed but logged, since nothing reaches analytics.
func (r *Registry) UpdateMatchStatus(ctx context.Context, id string, update StatusUpdate) (Match, error) {
	if !update.Status.Valid() {
		return Match{}, ErrInvalidStatus
	}

	match, err := r.GetMatch(ctx, id)
	if err != nil {
		return Match{}, err
	}

	now := r.now()
	match.Status = update.Status
	match.UpdatedAt = now

	switch update.Status {
	case StatusInProgress:
		if match.StartTime.IsZero() {
			match.StartTime = now
		}
	case StatusCompleted:
		if update.WinnerID == "" || update.FinalScore == "" {
			return Match{}, ErrMissingOutcome
		}
		if _, err := r.GetPlayer(ctx, update.WinnerID); err != nil {
			return Match{}, err
		}
		match.WinnerID = update.WinnerID
		match.FinalScore = update.FinalScore
		match.EndTime = now
	case StatusCancelled:
		match.WinnerID = ""
		match.FinalScore = ""
		match.EndTime = now
	case StatusScheduled:
	}

	_, err = r.conn.ExecContext(ctx, `
		UPDATE matches SET status = ?, winner_id = ?, final_score = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		string(match.Status), nullString(match.WinnerID), nullString(match.FinalScore),
		nullTimeString(match.StartTime), nullTimeString(match.EndTime),
		formatTime(match.UpdatedAt), match.ID,
	)
	if err != nil {
		return Match{}, fmt.Errorf("update match: %w", err)
	}

	if update.Status == StatusCompleted {
		r.publishCompletion(ctx, match, update.Stats)
	}

	r.logger.Info(ctx, "match status updated",
		logger.String("matchID", match.ID),
		logger.String("status", string(match.Status)),
	)
	return match, nil
}

func (r *Registry) publishCompletion(ctx context.Context, match Match, stats []model.PlayerStats) {
	if len(stats) == 0 {
		r.logger.Warn(ctx, "match completed without stats payload",
			logger.String("matchID", match.ID),
		)
		return
	}
	if r.publisher == nil {
		return
	}

	event := model.MatchCompletedEvent{
		MatchID:     match.ID,
		WinnerID:    match.WinnerID,
		FinalScore:  match.FinalScore,
		OccurredAt:  match.EndTime,
		PlayerStats: stats,
	}
	if err := r.publisher.PublishMatchCompleted(ctx, event); err != nil {
		r.logger.Error(ctx, "failed to publish match completed event",
			logger.String("matchID", match.ID),
			logger.Error(err),
		)
	}
}

// DeleteMatch soft-deletes a match.
func (r *Registry) DeleteMatch(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE matches SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(r.now()), id,
	)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// WinCountsBetween returns per-player win counts over completed matches whose
// end time falls in [from, to), grouped by winner and ordered most wins
// first. Zero bounds are open. Winners whose player row was soft-deleted keep
// their count under the Unknown name.
func (r *Registry) WinCountsBetween(ctx context.Context, from, to time.Time) ([]WinCount, error) {
	query := `
		SELECT m.winner_id, COALESCE(p.name, ?), COUNT(*) AS wins
		FROM matches m
		LEFT JOIN players p ON p.id = m.winner_id AND p.deleted_at IS NULL
		WHERE m.status = ? AND m.winner_id IS NOT NULL AND m.deleted_at IS NULL`
	args := []any{UnknownName, string(StatusCompleted)}

	if !from.IsZero() {
		query += ` AND m.end_time >= ?`
		args = append(args, formatTime(from))
	}
	if !to.IsZero() {
		query += ` AND m.end_time < ?`
		args = append(args, formatTime(to))
	}
	query += ` GROUP BY m.winner_id ORDER BY wins DESC`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("win counts: %w", err)
	}
	defer rows.Close()

	var out []WinCount
	for rows.Next() {
		var wc WinCount
		if err := rows.Scan(&wc.PlayerID, &wc.PlayerName, &wc.Wins); err != nil {
			return nil, fmt.Errorf("scan win count: %w", err)
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

const matchSelect = `
	SELECT id, club_id, player1_id, player2_id, winner_id, status, final_score,
	       start_time, end_time, created_at, updated_at
	FROM matches`

func scanMatch(row rowScanner) (Match, error) {
	var (
		match                Match
		winner, score        sql.NullString
		start, end           sql.NullString
		status               string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&match.ID, &match.ClubID, &match.Player1ID, &match.Player2ID,
		&winner, &status, &score, &start, &end, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, ErrMatchNotFound
	}
	if err != nil {
		return Match{}, fmt.Errorf("scan match: %w", err)
	}
	match.WinnerID = winner.String
	match.Status = MatchStatus(status)
	match.FinalScore = score.String
	match.StartTime = nullableTime(start)
	match.EndTime = nullableTime(end)
	match.CreatedAt = parseTime(createdAt)
	match.UpdatedAt = parseTime(updatedAt)
	return match, nil
}

func collectMatches(rows *sql.Rows) ([]Match, error) {
	var out []Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, match)
	}
	return out, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTimeString(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}
