package form

import (
	"net/url"

	"jobboard/domain"
)

type applicantFields struct {
	FirstName   string `form:"first_name" validate:"required,max=30"`
	LastName    string `form:"last_name" validate:"required,max=40"`
	PhoneNumber string `form:"phone_number" validate:"required,max=25"`
	Position    string `form:"position" validate:"required"`
	Email       string `form:"email" validate:"omitempty,email"`
	Resume      string `form:"resume" validate:"required"`
}

// Applicant validates an applicant submission the same way Job does.
// Unticked full_time/part_time boxes are simply false.
func Applicant(values url.Values, positions []domain.Position) (domain.ApplicantPost, error) {
	f := applicantFields{
		FirstName:   text(values, "first_name"),
		LastName:    text(values, "last_name"),
		PhoneNumber: text(values, "phone_number"),
		Position:    text(values, "position"),
		Email:       text(values, "email"),
		Resume:      text(values, "resume"),
	}
	errs := check(f)
	pos := position(f.Position, positions, errs)
	if len(errs) > 0 {
		return domain.ApplicantPost{}, errs
	}
	return domain.ApplicantPost{
		FirstName:   firstLine(f.FirstName),
		LastName:    firstLine(f.LastName),
		PhoneNumber: f.PhoneNumber,
		Email:       f.Email,
		Position:    pos,
		Resume:      f.Resume,
		FullTime:    Checked(values, "full_time"),
		PartTime:    Checked(values, "part_time"),
	}, nil
}
