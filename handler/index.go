package handler

import (
	"net/http"

	"jobboard/domain"

	"github.com/labstack/echo/v4"
)

type IndexDTO struct {
	Jobs       []domain.JobPost
	Applicants []domain.ApplicantPost
}

// GetIndex shows the newest few jobs and applicants.
func (h *Handler) GetIndex(c echo.Context) error {
	ctx := c.Request().Context()
	jobs, err := h.Store.ListJobPosts(ctx, domain.Today(h.now()), h.Settings.JobsOnIndex, 0)
	if err != nil {
		return err
	}
	applicants, err := h.Store.ListApplicantPosts(ctx, domain.Today(h.now()), h.Settings.ApplicantsOnIndex, 0)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index.html", IndexDTO{
		Jobs:       jobs,
		Applicants: applicants,
	})
}

func (h *Handler) GetThankYou(c echo.Context) error {
	return c.Render(http.StatusOK, "thank-you.html", nil)
}
