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

const jobColumns = `j.id, j.approved, j.when_posted, j.expiration_date, j.posters_name, j.work_hours,
	j.description, j.email, j.contact_information, p.id, p.name`

// CreateJobPost persists j, assigning an id when it has none.
func (s *Store) CreateJobPost(ctx context.Context, j *domain.JobPost) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO job_posts
	(id, approved, when_posted, expiration_date, posters_name, work_hours, description, position_id, email, contact_information)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.Approved, formatWhen(j.WhenPosted), formatDate(j.ExpirationDate), j.PostersName, j.WorkHours,
		j.Description, j.Position.ID, j.Email, j.ContactInformation)
	if err != nil {
		return fmt.Errorf("insert job post: %w", err)
	}
	return nil
}

// ListJobPosts returns approved job posts still running on today, newest
// first.
func (s *Store) ListJobPosts(ctx context.Context, today time.Time, limit, offset int) ([]domain.JobPost, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+jobColumns+`
	FROM job_posts j JOIN positions p ON p.id = j.position_id
	WHERE j.approved = TRUE AND j.expiration_date >= $1
	ORDER BY j.when_posted DESC, j.id
	LIMIT $2 OFFSET $3`, formatDate(today), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.JobPost{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, j)
	}
	return posts, rows.Err()
}

func (s *Store) CountJobPosts(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_posts
	WHERE approved = TRUE AND expiration_date >= $1`, formatDate(today)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count job posts: %w", err)
	}
	return n, nil
}

// GetJobPost fetches a job post by id whatever its approval or
// expiration state.
func (s *Store) GetJobPost(ctx context.Context, id string) (domain.JobPost, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+jobColumns+`
	FROM job_posts j JOIN positions p ON p.id = j.position_id
	WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return j, ErrNotFound
	}
	return j, err
}

func (s *Store) SetJobPostApproved(ctx context.Context, id string, approved bool) error {
	return s.setApproved(ctx, "job_posts", id, approved)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (domain.JobPost, error) {
	j := domain.JobPost{}
	var when, expires string
	err := row.Scan(&j.ID, &j.Approved, &when, &expires, &j.PostersName, &j.WorkHours,
		&j.Description, &j.Email, &j.ContactInformation, &j.Position.ID, &j.Position.Name)
	if err != nil {
		return j, err
	}
	if j.WhenPosted, err = parseWhen(when); err != nil {
		return j, err
	}
	if j.ExpirationDate, err = parseDate(expires); err != nil {
		return j, err
	}
	return j, nil
}
