package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"jobboard/web"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho wires the renderer, error pages, static assets and routes.
// Access logging and TLS are left to the caller.
func NewEcho(h *Handler) (*echo.Echo, error) {
	reg, err := web.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	assets := web.Assets()

	e := echo.New()
	e.HideBanner = true
	e.Renderer = reg
	e.HTTPErrorHandler = ErrorHandler(assets)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/", h.GetIndex)
	e.GET("/jobs/", h.GetJobs)
	e.GET("/jobs/:id", h.GetJobByID)
	e.GET("/applicants/", h.GetApplicants)
	e.GET("/applicants/:id", h.GetApplicantByID)
	e.GET("/submit_job/", h.GetJobForm)
	e.POST("/submit_job/", h.NewJob)
	e.GET("/submit_applicant/", h.GetApplicantForm)
	e.POST("/submit_applicant/", h.NewApplicant)
	e.GET("/thank_you/", h.GetThankYou)
	e.StaticFS("/static", assets)

	return e, nil
}

// ErrorHandler renders assets/<code>.html with the right status, falling
// back to plain text when there is no page for the code.
func ErrorHandler(assets fs.FS) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		if code != http.StatusNotFound {
			c.Logger().Error(err)
		}
		page, ferr := fs.ReadFile(assets, fmt.Sprintf("%d.html", code))
		if ferr != nil {
			ferr = c.String(code, http.StatusText(code))
		} else {
			ferr = c.HTMLBlob(code, page)
		}
		if ferr != nil {
			c.Logger().Error(ferr)
		}
	}
}
