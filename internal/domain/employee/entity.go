package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	EmployeeTypeID   string
	BasicSalary      decimal.Decimal
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined from employee_types; nil when the referenced type row is missing.
	Type *EmployeeType
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type TypeCategory string

const (
	TypeCategoryRegular    TypeCategory = "regular"
	TypeCategoryPartTime   TypeCategory = "part_time"
	TypeCategoryContractor TypeCategory = "contractor"
)

// EmployeeType carries the pay-policy attributes of an employment category:
// premium multipliers and contracted weekly hours.
type EmployeeType struct {
	ID                   string
	Name                 string
	Category             TypeCategory
	OvertimeMultiplier   decimal.Decimal
	HolidayPayMultiplier decimal.Decimal
	WorkingHoursPerWeek  decimal.Decimal
}

func (t *EmployeeType) IsContractor() bool {
	return t.Category == TypeCategoryContractor
}
