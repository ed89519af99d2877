package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobboard/domain"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "jobboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

var today = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func jobFixture(pos domain.Position, approved bool, expires time.Time, name string) *domain.JobPost {
	return &domain.JobPost{
		PostersName:        name,
		WorkHours:          "9am-5pm",
		Description:        "An extremely boring job",
		Position:           pos,
		Email:              "lol@lol.lol",
		ContactInformation: "Call (555) 555-555 for details",
		Approved:           approved,
		WhenPosted:         today,
		ExpirationDate:     expires,
	}
}

func TestMigrateReleasesConnections(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Migrate(), migrate.ErrNoChange)
	assert.Zero(t, s.DB.Stats().InUse)
}

// TestPostgresMigrate needs a scratch database, for example
// JOBBOARD_TEST_POSTGRES_URL=postgres://postgres@localhost/jobboard_test?sslmode=disable
func TestPostgresMigrate(t *testing.T) {
	dsn := os.Getenv("JOBBOARD_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("JOBBOARD_TEST_POSTGRES_URL not set")
	}
	s, err := Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(); err != nil {
		require.ErrorIs(t, err, migrate.ErrNoChange)
	}
	assert.Zero(t, s.DB.Stats().InUse)
	_, err = s.ListPositions(context.Background())
	assert.NoError(t, err)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestPositions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	welder, err := s.CreatePosition(ctx, " Welder ")
	require.NoError(t, err)
	assert.NotZero(t, welder.ID)
	assert.Equal(t, "Welder", welder.Name)

	_, err = s.CreatePosition(ctx, "Cook")
	require.NoError(t, err)
	_, err = s.CreatePosition(ctx, "  ")
	assert.Error(t, err)
	_, err = s.CreatePosition(ctx, strings.Repeat("é", MaxPositionName+1))
	assert.ErrorContains(t, err, "at most 80")
	_, err = s.CreatePosition(ctx, strings.Repeat("é", MaxPositionName))
	require.NoError(t, err)

	list, err := s.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Cook", list[0].Name)

	got, err := s.GetPosition(ctx, welder.ID)
	require.NoError(t, err)
	assert.Equal(t, welder, got)

	_, err = s.GetPosition(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotifyEmails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	emails, err := s.NotifyEmails(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails)

	_, err = s.AddNotifyEmail(ctx, "linux@holla.com")
	require.NoError(t, err)
	_, err = s.AddNotifyEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	_, err = s.AddNotifyEmail(ctx, "not an email")
	assert.Error(t, err)

	emails, err = s.NotifyEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"linux@holla.com", "ops@example.com"}, emails)

	require.NoError(t, s.RemoveNotifyEmail(ctx, "linux@holla.com"))
	assert.ErrorIs(t, s.RemoveNotifyEmail(ctx, "linux@holla.com"), ErrNotFound)

	emails, err = s.NotifyEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops@example.com"}, emails)
}

func TestJobPostRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pos, err := s.CreatePosition(ctx, "Dental Hygenist")
	require.NoError(t, err)

	j := jobFixture(pos, false, domain.CalculatePostExpires(today, 30), "Christopher McBaggins")
	require.NoError(t, s.CreateJobPost(ctx, j))
	assert.Len(t, j.ID, 36)

	got, err := s.GetJobPost(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.PostersName, got.PostersName)
	assert.Equal(t, j.ContactInformation, got.ContactInformation)
	assert.Equal(t, pos, got.Position)
	assert.False(t, got.Approved)
	assert.True(t, got.WhenPosted.Equal(today))
	assert.Equal(t, "2024-02-14", got.ExpirationDate.Format(domain.DateLayout))

	_, err = s.GetJobPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListJobPostsFiltersApprovedAndExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pos, err := s.CreatePosition(ctx, "Cook")
	require.NoError(t, err)

	future := today.AddDate(0, 0, 30)
	past := today.AddDate(0, 0, -30)
	patterns := []struct {
		approved bool
		expires  time.Time
		name     string
	}{
		{true, future, "visible"},
		{false, past, "unapproved-expired"},
		{false, future, "unapproved"},
		{true, past, "expired"},
		{true, domain.Today(today), "last-day"},
	}
	for _, p := range patterns {
		require.NoError(t, s.CreateJobPost(ctx, jobFixture(pos, p.approved, p.expires, p.name)))
	}

	posts, err := s.ListJobPosts(ctx, domain.Today(today), 10, 0)
	require.NoError(t, err)
	var names []string
	for _, p := range posts {
		assert.True(t, p.Approved)
		assert.False(t, p.ExpirationDate.Before(domain.Today(today)))
		names = append(names, p.PostersName)
	}
	assert.ElementsMatch(t, []string{"visible", "last-day"}, names)

	n, err := s.CountJobPosts(ctx, domain.Today(today))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// the next day the last-day post drops out
	n, err = s.CountJobPosts(ctx, domain.Today(today).AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestListJobPostsNewestFirstAndPaged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pos, err := s.CreatePosition(ctx, "Cook")
	require.NoError(t, err)

	for i, name := range []string{"oldest", "middle", "newest"} {
		j := jobFixture(pos, true, today.AddDate(0, 0, 30), name)
		j.WhenPosted = today.Add(time.Duration(i) * 1500 * time.Millisecond)
		require.NoError(t, s.CreateJobPost(ctx, j))
	}

	page1, err := s.ListJobPosts(ctx, today, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "newest", page1[0].PostersName)
	assert.Equal(t, "middle", page1[1].PostersName)

	page2, err := s.ListJobPosts(ctx, today, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "oldest", page2[0].PostersName)
}

func TestSetJobPostApproved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pos, err := s.CreatePosition(ctx, "Cook")
	require.NoError(t, err)

	j := jobFixture(pos, false, today.AddDate(0, 0, 30), "pending")
	require.NoError(t, s.CreateJobPost(ctx, j))

	require.NoError(t, s.SetJobPostApproved(ctx, j.ID, true))
	n, err := s.CountJobPosts(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, s.SetJobPostApproved(ctx, "missing", true), ErrNotFound)
}

func TestApplicantPosts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pos, err := s.CreatePosition(ctx, "Welder")
	require.NoError(t, err)

	a := &domain.ApplicantPost{
		FirstName:      "Jane",
		LastName:       "Doe",
		PhoneNumber:    "555-0100",
		Email:          "jane@example.com",
		Position:       pos,
		Resume:         "Twenty years of welding.",
		FullTime:       true,
		WhenPosted:     today,
		ExpirationDate: domain.CalculatePostExpires(today, 30),
	}
	require.NoError(t, s.CreateApplicantPost(ctx, a))

	n, err := s.CountApplicantPosts(ctx, today)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.SetApplicantPostApproved(ctx, a.ID, true))
	posts, err := s.ListApplicantPosts(ctx, today, 5, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Jane Doe", posts[0].FullName())
	assert.True(t, posts[0].FullTime)
	assert.False(t, posts[0].PartTime)
	assert.Equal(t, "Welder", posts[0].Position.Name)

	posts, err = s.ListApplicantPosts(ctx, today.AddDate(0, 0, 31), 5, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)

	got, err := s.GetApplicantPost(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Twenty years of welding.", got.Resume)

	_, err = s.GetApplicantPost(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.SetApplicantPostApproved(ctx, "missing", false), ErrNotFound)
}
