package hrapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Amund211/rollcall/internal/domain"
)

type shiftHoursWire struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Hours float64  `json:"hours"`
	Days  []string `json:"days"`
}

// UnmarshalJSON also accepts the "09:00 AM - 06:00 PM" form written at registration
func (s *shiftHoursWire) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		start, end, _ := strings.Cut(text, " - ")
		*s = shiftHoursWire{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
		return nil
	}

	type plain shiftHoursWire
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = shiftHoursWire(decoded)
	return nil
}

type ctcWire struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Frequency string  `json:"frequency"`
}

type employeeWire struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	JobTitle    string         `json:"job_title"`
	Department  string         `json:"department"`
	Location    string         `json:"location"`
	HireDate    string         `json:"hire_date"`
	Salary      float64        `json:"salary"`
	Designation string         `json:"designation"`
	ShiftHours  shiftHoursWire `json:"employee_shift_hours"`
	Address     string         `json:"address"`
	DateOfBirth string         `json:"date_of_birth"`
	Age         int            `json:"age"`
	BloodType   string         `json:"blood_type"`
	CTC         ctcWire        `json:"ctc"`
}

func (e employeeWire) toDomain() domain.Employee {
	return domain.Employee{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Name:        e.Name,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		Location:    e.Location,
		HireDate:    e.HireDate,
		Salary:      e.Salary,
		Designation: e.Designation,
		ShiftHours: domain.ShiftHours{
			Start: e.ShiftHours.Start,
			End:   e.ShiftHours.End,
			Hours: e.ShiftHours.Hours,
			Days:  e.ShiftHours.Days,
		},
		Address:     e.Address,
		DateOfBirth: e.DateOfBirth,
		Age:         e.Age,
		BloodType:   e.BloodType,
		CTC: domain.CTC{
			Amount:    e.CTC.Amount,
			Currency:  e.CTC.Currency,
			Frequency: e.CTC.Frequency,
		},
	}
}

func DecodeEmployees(body []byte) ([]domain.Employee, error) {
	var wire []employeeWire
	if err := decodeData(body, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	employees := make([]domain.Employee, 0, len(wire))
	for _, employee := range wire {
		employees = append(employees, employee.toDomain())
	}
	return employees, nil
}

func DecodeEmployee(body []byte) (domain.Employee, error) {
	var wire employeeWire
	if err := decodeData(body, &wire); err != nil {
		return domain.Employee{}, fmt.Errorf("failed to decode employee: %w", err)
	}
	return wire.toDomain(), nil
}

type NewEmployeeRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Designation string `json:"designation,omitempty"`
	Department  string `json:"department,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Password    string `json:"password"`
	ShiftHours  string `json:"employee_shift_hours"`
	CompanyID   string `json:"companyId"`
}

func NewEmployeeRequestFrom(employee domain.NewEmployee) NewEmployeeRequest {
	return NewEmployeeRequest{
		Name:        employee.Name,
		Email:       employee.Email,
		PhoneNumber: employee.PhoneNumber,
		Designation: employee.Designation,
		Department:  employee.Department,
		Address:     employee.Address,
		DateOfBirth: employee.DateOfBirth,
		Password:    employee.Password,
		ShiftHours:  employee.ShiftStart + " - " + employee.ShiftEnd,
	}
}

type EmployeeUpdateRequest struct {
	FirstName   *string         `json:"first_name,omitempty"`
	LastName    *string         `json:"last_name,omitempty"`
	Email       *string         `json:"email,omitempty"`
	PhoneNumber *string         `json:"phone_number,omitempty"`
	JobTitle    *string         `json:"job_title,omitempty"`
	Department  *string         `json:"department,omitempty"`
	Designation *string         `json:"designation,omitempty"`
	Address     *string         `json:"address,omitempty"`
	ShiftHours  *shiftHoursWire `json:"employee_shift_hours,omitempty"`
}

func EmployeeUpdateRequestFrom(update domain.EmployeeUpdate) EmployeeUpdateRequest {
	request := EmployeeUpdateRequest{
		FirstName:   update.FirstName,
		LastName:    update.LastName,
		Email:       update.Email,
		PhoneNumber: update.PhoneNumber,
		JobTitle:    update.JobTitle,
		Department:  update.Department,
		Designation: update.Designation,
		Address:     update.Address,
	}
	if update.ShiftHours != nil {
		request.ShiftHours = &shiftHoursWire{
			Start: update.ShiftHours.Start,
			End:   update.ShiftHours.End,
			Hours: update.ShiftHours.Hours,
			Days:  update.ShiftHours.Days,
		}
	}
	return request
}
