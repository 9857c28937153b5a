package leave

import "time"

// Type is the leave kind as far as attendance classification cares: paid
// leave suppresses absence, work-from-home additionally marks the day WFH.
type Type string

const (
	TypePaid   Type = "paid"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
	TypeWFH    Type = "wfh"
)

// Leave is an approved leave record overlapping some date range. Leave CRUD
// and quota logic live in the surrounding HR product; this engine only reads.
type Leave struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
}
