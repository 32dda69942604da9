package domain

type ShiftHours struct {
	Start string
	End   string
	Hours float64
	Days  []string
}

type CTC struct {
	Amount    float64
	Currency  string
	Frequency string
}

type Employee struct {
	ID          string
	FirstName   string
	LastName    string
	Name        string
	Email       string
	PhoneNumber string
	JobTitle    string
	Department  string
	Location    string
	HireDate    string
	Salary      float64
	Designation string
	ShiftHours  ShiftHours
	Address     string
	DateOfBirth string
	Age         int
	BloodType   string
	CTC         CTC
}

// DisplayName falls back to first + last name when the directory has no full name
func (e Employee) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	switch {
	case e.FirstName != "" && e.LastName != "":
		return e.FirstName + " " + e.LastName
	case e.FirstName != "":
		return e.FirstName
	case e.LastName != "":
		return e.LastName
	}
	return UnknownEmployeeName
}

// NewEmployee is the registration form. Shift times are 12 hour clock values
// such as "09:00 AM".
type NewEmployee struct {
	Name        string `validate:"required"`
	Email       string `validate:"required,email"`
	PhoneNumber string `validate:"omitempty,min=6"`
	Designation string
	Department  string
	Address     string
	DateOfBirth string `validate:"omitempty,datetime=2006-01-02"`
	Password    string `validate:"required,min=6"`
	ShiftStart  string `validate:"required"`
	ShiftEnd    string `validate:"required"`
}

// EmployeeUpdate holds the fields to change. Nil fields are left untouched.
type EmployeeUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string `validate:"omitempty,email"`
	PhoneNumber *string
	JobTitle    *string
	Department  *string
	Designation *string
	Address     *string
	ShiftHours  *ShiftHours `validate:"-"`
}
