package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobboard/domain"

	"github.com/google/uuid"
)

const applicantColumns = `a.id, a.approved, a.when_posted, a.expiration_date, a.first_name, a.last_name,
	a.phone_number, a.email, a.resume, a.full_time, a.part_time, p.id, p.name`

func (s *Store) CreateApplicantPost(ctx context.Context, a *domain.ApplicantPost) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO applicant_posts
	(id, approved, when_posted, expiration_date, first_name, last_name, phone_number, email, position_id, resume, full_time, part_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.Approved, formatWhen(a.WhenPosted), formatDate(a.ExpirationDate), a.FirstName, a.LastName,
		a.PhoneNumber, a.Email, a.Position.ID, a.Resume, a.FullTime, a.PartTime)
	if err != nil {
		return fmt.Errorf("insert applicant post: %w", err)
	}
	return nil
}

func (s *Store) ListApplicantPosts(ctx context.Context, today time.Time, limit, offset int) ([]domain.ApplicantPost, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+applicantColumns+`
	FROM applicant_posts a JOIN positions p ON p.id = a.position_id
	WHERE a.approved = TRUE AND a.expiration_date >= $1
	ORDER BY a.when_posted DESC, a.id
	LIMIT $2 OFFSET $3`, formatDate(today), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applicant posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.ApplicantPost{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, a)
	}
	return posts, rows.Err()
}

func (s *Store) CountApplicantPosts(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM applicant_posts
	WHERE approved = TRUE AND expiration_date >= $1`, formatDate(today)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applicant posts: %w", err)
	}
	return n, nil
}

func (s *Store) GetApplicantPost(ctx context.Context, id string) (domain.ApplicantPost, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+applicantColumns+`
	FROM applicant_posts a JOIN positions p ON p.id = a.position_id
	WHERE a.id = $1`, id)
	a, err := scanApplicant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

func (s *Store) SetApplicantPostApproved(ctx context.Context, id string, approved bool) error {
	return s.setApproved(ctx, "applicant_posts", id, approved)
}

func scanApplicant(row scanner) (domain.ApplicantPost, error) {
	a := domain.ApplicantPost{}
	var when, expires string
	err := row.Scan(&a.ID, &a.Approved, &when, &expires, &a.FirstName, &a.LastName,
		&a.PhoneNumber, &a.Email, &a.Resume, &a.FullTime, &a.PartTime, &a.Position.ID, &a.Position.Name)
	if err != nil {
		return a, err
	}
	if a.WhenPosted, err = parseWhen(when); err != nil {
		return a, err
	}
	if a.ExpirationDate, err = parseDate(expires); err != nil {
		return a, err
	}
	return a, nil
}
