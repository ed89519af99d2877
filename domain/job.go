package domain

import (
	"fmt"
	"time"
)

type JobPost struct {
	ID                 string
	PostersName        string
	WorkHours          string
	Description        string
	Position           Position
	Email              string
	ContactInformation string
	Approved           bool
	WhenPosted         time.Time
	ExpirationDate     time.Time
}

func (j JobPost) String() string {
	return fmt.Sprintf("%s @ %s", j.PostersName, j.WhenPosted.Format("01-02-2006 03:04PM"))
}

func (j JobPost) VisibleOn(today time.Time) bool {
	return Visible(j.Approved, j.ExpirationDate, today)
}
