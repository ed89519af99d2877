package handler

import (
	"errors"
	"net/http"

	"jobboard/domain"
	"jobboard/form"
	"jobboard/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ApplicantListDTO struct {
	Applicants []domain.ApplicantPost
	Page       Page
}

func (h *Handler) GetApplicants(c echo.Context) error {
	ctx := c.Request().Context()
	today := domain.Today(h.now())
	total, err := h.Store.CountApplicantPosts(ctx, today)
	if err != nil {
		return err
	}
	page, err := paginate(total, h.Settings.ApplicantsPerPage, c.QueryParam("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	applicants, err := h.Store.ListApplicantPosts(ctx, today, page.PerPage, page.Offset())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "applicant-list.html", ApplicantListDTO{Applicants: applicants, Page: page})
}

func (h *Handler) GetApplicantByID(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.ErrNotFound
	}
	a, err := h.Store.GetApplicantPost(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	if !a.VisibleOn(domain.Today(h.now())) {
		return echo.ErrNotFound
	}
	return c.Render(http.StatusOK, "applicant-view.html", a)
}

func (h *Handler) GetApplicantForm(c echo.Context) error {
	positions, err := h.Store.ListPositions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "submit-applicant.html", FormDTO{
		Values:    initialValues(positions),
		Errors:    form.Errors{},
		Positions: positions,
	})
}

func (h *Handler) NewApplicant(c echo.Context) error {
	ctx := c.Request().Context()
	positions, err := h.Store.ListPositions(ctx)
	if err != nil {
		return err
	}
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := form.Applicant(values, positions)
	if errs, ok := form.AsErrors(err); ok {
		return c.Render(http.StatusOK, "submit-applicant.html", FormDTO{
			Values:    values,
			Errors:    errs,
			Positions: positions,
		})
	}
	if err != nil {
		return err
	}

	now := h.now()
	a.Approved = false
	a.WhenPosted = now
	a.ExpirationDate = domain.CalculatePostExpires(now, h.Settings.ExpireDays)
	if err := h.Store.CreateApplicantPost(ctx, &a); err != nil {
		return err
	}

	recipients, err := h.Store.NotifyEmails(ctx)
	if err != nil {
		return err
	}
	if err := h.Notifier.ApplicantPosted(ctx, recipients, a); err != nil {
		return err
	}
	c.Logger().Infof("applicant post %s submitted, notified %d", a.ID, len(recipients))

	return c.Redirect(http.StatusFound, "/thank_you/")
}
