package domain

import (
	"fmt"
	"strings"
	"time"
)

type ApplicantPost struct {
	ID             string
	FirstName      string
	LastName       string
	PhoneNumber    string
	Email          string
	Position       Position
	Resume         string
	FullTime       bool
	PartTime       bool
	Approved       bool
	WhenPosted     time.Time
	ExpirationDate time.Time
}

func (a ApplicantPost) FullName() string {
	return a.FirstName + " " + a.LastName
}

// HoursString lists the kinds of hours the applicant asked for, or
// "unspecified" when none were ticked.
func (a ApplicantPost) HoursString() string {
	var hours []string
	if a.FullTime {
		hours = append(hours, "full time")
	}
	if a.PartTime {
		hours = append(hours, "part time")
	}
	if len(hours) == 0 {
		return "unspecified"
	}
	return strings.Join(hours, ", ")
}

func (a ApplicantPost) String() string {
	return fmt.Sprintf("%s @ %s", a.FullName(), a.WhenPosted.Format("01-02-2006 03:04PM"))
}

func (a ApplicantPost) VisibleOn(today time.Time) bool {
	return Visible(a.Approved, a.ExpirationDate, today)
}
