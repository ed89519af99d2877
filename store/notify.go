package store

import (
	"context"
	"fmt"
	"strings"

	"jobboard/domain"
)

func (s *Store) AddNotifyEmail(ctx context.Context, email string) (domain.NotifyEmail, error) {
	n := domain.NotifyEmail{Email: strings.TrimSpace(email)}
	if err := n.Validate(); err != nil {
		return n, err
	}
	err := s.DB.QueryRowContext(ctx, "INSERT INTO notify_emails (email) VALUES ($1) RETURNING id", n.Email).Scan(&n.ID)
	if err != nil {
		return n, fmt.Errorf("insert notify email: %w", err)
	}
	return n, nil
}

func (s *Store) RemoveNotifyEmail(ctx context.Context, email string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM notify_emails WHERE email = $1", strings.TrimSpace(email))
	if err != nil {
		return fmt.Errorf("delete notify email: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// NotifyEmails returns the addresses to alert, in insertion order.
func (s *Store) NotifyEmails(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT email FROM notify_emails ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list notify emails: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}
