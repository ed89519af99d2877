package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"jobboard/domain"
)

// MaxPositionName matches the positions.name column width.
const MaxPositionName = 80

func (s *Store) CreatePosition(ctx context.Context, name string) (domain.Position, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Position{}, errors.New("position name is empty")
	}
	if n := utf8.RuneCountInString(name); n > MaxPositionName {
		return domain.Position{}, fmt.Errorf("position name has %d characters, at most %d allowed", n, MaxPositionName)
	}
	p := domain.Position{Name: name}
	err := s.DB.QueryRowContext(ctx, "INSERT INTO positions (name) VALUES ($1) RETURNING id", name).Scan(&p.ID)
	if err != nil {
		return domain.Position{}, fmt.Errorf("insert position: %w", err)
	}
	return p, nil
}

func (s *Store) ListPositions(ctx context.Context) ([]domain.Position, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, name FROM positions ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var out []domain.Position
	for rows.Next() {
		var p domain.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPosition(ctx context.Context, id int64) (domain.Position, error) {
	p := domain.Position{}
	err := s.DB.QueryRowContext(ctx, "SELECT id, name FROM positions WHERE id = $1", id).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}
