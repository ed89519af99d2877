package form

import (
	"net/url"

	"jobboard/domain"
)

type jobFields struct {
	PostersName        string `form:"posters_name" validate:"required,max=80"`
	WorkHours          string `form:"work_hours" validate:"max=80"`
	Description        string `form:"description"`
	Position           string `form:"position" validate:"required"`
	Email              string `form:"email" validate:"omitempty,email"`
	ContactInformation string `form:"contact_information" validate:"required"`
}

// Job validates a job submission. On success the returned post carries
// the submitted fields only; ids and dates are left to the caller. On
// failure err is an Errors and the post is zero.
func Job(values url.Values, positions []domain.Position) (domain.JobPost, error) {
	f := jobFields{
		PostersName:        text(values, "posters_name"),
		WorkHours:          text(values, "work_hours"),
		Description:        text(values, "description"),
		Position:           text(values, "position"),
		Email:              text(values, "email"),
		ContactInformation: text(values, "contact_information"),
	}
	errs := check(f)
	pos := position(f.Position, positions, errs)
	if len(errs) > 0 {
		return domain.JobPost{}, errs
	}
	return domain.JobPost{
		PostersName:        firstLine(f.PostersName),
		WorkHours:          f.WorkHours,
		Description:        f.Description,
		Position:           pos,
		Email:              f.Email,
		ContactInformation: f.ContactInformation,
	}, nil
}
