package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"jobboard/domain"
	"jobboard/form"
	"jobboard/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type JobListDTO struct {
	Jobs []domain.JobPost
	Page Page
}

type FormDTO struct {
	Values    url.Values
	Errors    form.Errors
	Positions []domain.Position
}

func (f FormDTO) Checked(name string) bool {
	return form.Checked(f.Values, name)
}

func (h *Handler) GetJobs(c echo.Context) error {
	ctx := c.Request().Context()
	today := domain.Today(h.now())
	total, err := h.Store.CountJobPosts(ctx, today)
	if err != nil {
		return err
	}
	page, err := paginate(total, h.Settings.JobsPerPage, c.QueryParam("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	jobs, err := h.Store.ListJobPosts(ctx, today, page.PerPage, page.Offset())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "job-list.html", JobListDTO{Jobs: jobs, Page: page})
}

// GetJobByID shows one job while it is approved and unexpired.
func (h *Handler) GetJobByID(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.ErrNotFound
	}
	j, err := h.Store.GetJobPost(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !j.VisibleOn(domain.Today(h.now())) {
		return echo.ErrNotFound
	}
	return c.Render(http.StatusOK, "job-view.html", j)
}

func (h *Handler) GetJobForm(c echo.Context) error {
	positions, err := h.Store.ListPositions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "submit-job.html", FormDTO{
		Values:    initialValues(positions),
		Errors:    form.Errors{},
		Positions: positions,
	})
}

// NewJob validates a submitted job, stores it unapproved, alerts the
// notify list and redirects to the thank-you page.
func (h *Handler) NewJob(c echo.Context) error {
	ctx := c.Request().Context()
	positions, err := h.Store.ListPositions(ctx)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	j, err := form.Job(values, positions)
	if errs, ok := form.AsErrors(err); ok {
		return c.Render(http.StatusOK, "submit-job.html", FormDTO{
			Values:    values,
			Errors:    errs,
			Positions: positions,
		})
	}
	if err != nil {
		return err
	}

	now := h.now()
	j.Approved = false
	j.WhenPosted = now
	j.ExpirationDate = domain.CalculatePostExpires(now, h.Settings.ExpireDays)
	if err := h.Store.CreateJobPost(ctx, &j); err != nil {
		return err
	}

	recipients, err := h.Store.NotifyEmails(ctx)
	if err != nil {
		return err
	}
	if err := h.Notifier.JobPosted(ctx, recipients, j); err != nil {
		return err
	}
	c.Logger().Infof("job post %s submitted, notified %d", j.ID, len(recipients))

	return c.Redirect(http.StatusFound, "/thank_you/")
}

// initialValues preselects the position when there is only one.
func initialValues(positions []domain.Position) url.Values {
	values := url.Values{}
	if p, ok := domain.DefaultPosition(positions); ok {
		values.Set("position", strconv.FormatInt(p.ID, 10))
	}
	return values
}
