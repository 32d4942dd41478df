package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateClub inserts a new club and returns it with id and timestamps set.
func (r *Registry) CreateClub(ctx context.Context, club Club) (Club, error) {
	now := r.now()
	club.ID = r.idgen()
	club.CreatedAt = now
	club.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO clubs(id, name, city, country, default_surface, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		club.ID, club.Name, club.City, club.Country, club.DefaultSurface,
		formatTime(club.CreatedAt), formatTime(club.UpdatedAt),
	)
	if err != nil {
		return Club{}, fmt.Errorf("insert club: %w", err)
	}
	return club, nil
}

// GetClub returns a club by id. Soft-deleted clubs are not found.
func (r *Registry) GetClub(ctx context.Context, id string) (Club, error) {
	row := r.conn.QueryRowContext(ctx, `
		SELECT id, name, city, country, default_surface, created_at, updated_at
		FROM clubs WHERE id = ? AND deleted_at IS NULL`, id)
	return scanClub(row)
}

// ListClubs returns all live clubs.
func (r *Registry) ListClubs(ctx context.Context) ([]Club, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, name, city, country, default_surface, created_at, updated_at
		FROM clubs WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var out []Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, club)
	}
	return out, rows.Err()
}

// UpdateClub updates the mutable fields of a club.
func (r *Registry) UpdateClub(ctx context.Context, club Club) (Club, error) {
	club.UpdatedAt = r.now()
	res, err := r.conn.ExecContext(ctx, `
		UPDATE clubs SET name = ?, city = ?, country = ?, default_surface = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		club.Name, club.City, club.Country, club.DefaultSurface,
		formatTime(club.UpdatedAt), club.ID,
	)
	if err != nil {
		return Club{}, fmt.Errorf("update club: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Club{}, ErrClubNotFound
	}
	return r.GetClub(ctx, club.ID)
}

// DeleteClub soft-deletes a club.
func (r *Registry) DeleteClub(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE clubs SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		formatTime(r.now()), id,
	)
	if err != nil {
		return fmt.Errorf("delete club: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClubNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (Club, error) {
	var (
		club                 Club
		city, country, surf  sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&club.ID, &club.Name, &city, &country, &surf, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Club{}, ErrClubNotFound
	}
	if err != nil {
		return Club{}, fmt.Errorf("scan club: %w", err)
	}
	club.City = city.String
	club.Country = country.String
	club.DefaultSurface = surf.String
	club.CreatedAt = parseTime(createdAt)
	club.UpdatedAt = parseTime(updatedAt)
	return club, nil
}
