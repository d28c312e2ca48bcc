package timeentries

import "time"

type LogTimeRequest struct {
	Hours       float64    `json:"hours" binding:"required,gt=0"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Billable    bool       `json:"billable"`
}
