package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreatePlayer inserts a new player and returns it with id and timestamps set.
func (r *Registry) CreatePlayer(ctx context.Context, player Player) (Player, error) {
	now := r.now()
	player.ID = r.idgen()
	player.CreatedAt = now
	player.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO players(id, name, handedness, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		player.ID, player.Name, player.Handedness,
		formatTime(player.CreatedAt), formatTime(player.UpdatedAt),
	)
	if err != nil {
		return Player{}, fmt.Errorf("insert player: %w", err)
	}
	return player, nil
}

// GetPlayer returns a player by id. Soft-deleted players are not found.
func (r *Registry) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := r.conn.QueryRowContext(ctx, `
		SELECT id, name, handedness, created_at, updated_at
		FROM players WHERE id = ? AND deleted_at IS NULL`, id)
	return scanPlayer(row)
}

// ListPlayers returns all live players.
func (r *Registry) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, name, handedness, created_at, updated_at
		FROM players WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, player)
	}
	return out, rows.Err()
}

// UpdatePlayer updates the mutable fields of a player.
func (r *Registry) UpdatePlayer(ctx context.Context, player Player) (Player, error) {
	player.UpdatedAt = r.now()
	res, err := r.conn.ExecContext(ctx, `
		UPDATE players SET name = ?, handedness = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		player.Name, player.Handedness, formatTime(player.UpdatedAt), player.ID,
	)
	if err != nil {
		return Player{}, fmt.Errorf("update player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Player{}, ErrPlayerNotFound
	}
	return r.GetPlayer(ctx, player.ID)
}

// DeletePlayer soft-deletes a player.
func (r *Registry) DeletePlayer(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE players SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(r.now()), id,
	)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// PlayerName resolves a player id to a display name. Missing or deleted
// players resolve to the Unknown sentinel rather than an error so read
// paths degrade instead of failing.
func (r *Registry) PlayerName(ctx context.Context, id string) string {
	var name string
	err := r.conn.QueryRowContext(ctx,
		`SELECT name FROM players WHERE id = ? AND deleted_at IS NULL`, id,
	).Scan(&name)
	if err != nil {
		return UnknownName
	}
	return name
}

func scanPlayer(row rowScanner) (Player, error) {
	var (
		player               Player
		handedness           sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&player.ID, &player.Name, &handedness, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return Player{}, fmt.Errorf("scan player: %w", err)
	}
	player.Handedness = handedness.String
	player.CreatedAt = parseTime(createdAt)
	player.UpdatedAt = parseTime(updatedAt)
	return player, nil
}
