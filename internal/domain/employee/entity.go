package employee

import "time"

// Employee is the flattened, read-only view supplied by the organizational
// data collaborator. Only the fields attendance and leave need are carried.
type Employee struct {
	ID           string
	UserID       string
	FullName     string
	Email        string
	BranchID     string
	DepartmentID *string
	Timezone     string // IANA name, e.g. "Asia/Kolkata"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
