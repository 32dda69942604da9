package hrapi

import (
	"net/http"
	"net/url"
	"strings"
)

// Endpoints holds the base URLs of the three HR backend services
type Endpoints struct {
	EmployeeBaseURL   string
	AttendanceBaseURL string
	CompanyBaseURL    string
}

func join(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, segment := range segments {
		b.WriteString("/")
		b.WriteString(segment)
	}
	return b.String()
}

func (e Endpoints) EmployeeListURL() string {
	return join(e.EmployeeBaseURL, "api", "employee", "all")
}

func (e Endpoints) EmployeeURL(id string) string {
	return join(e.EmployeeBaseURL, "api", "employee", url.PathEscape(id))
}

func (e Endpoints) EmployeeRegisterURL() string {
	return join(e.EmployeeBaseURL, "api", "employee", "register")
}

func (e Endpoints) EmployeeResetPasswordURL(id string) string {
	return join(e.EmployeeBaseURL, "api", "employee", url.PathEscape(id), "reset-password")
}

func (e Endpoints) AttendanceAllURL() string {
	return join(e.AttendanceBaseURL, "api", "attendance", "all")
}

func (e Endpoints) AttendanceByDateURL() string {
	return join(e.AttendanceBaseURL, "api", "attendance", "date")
}

func (e Endpoints) EmployeeAttendanceURL(employeeID string) string {
	return join(e.AttendanceBaseURL, "api", "attendance", "employee", url.PathEscape(employeeID))
}

func (e Endpoints) ConfigURL() string {
	return join(e.AttendanceBaseURL, "api", "config")
}

func (e Endpoints) DashboardURL() string {
	return join(e.AttendanceBaseURL, "api", "dashboard")
}

func (e Endpoints) LoginURL() string {
	return join(e.CompanyBaseURL, "api", "company", "login")
}

func (e Endpoints) CompanyRegisterURL() string {
	return join(e.CompanyBaseURL, "api", "company", "register")
}

type companyBody struct {
	CompanyID string `json:"companyId"`
}

type dateBody struct {
	Date      string `json:"date"`
	CompanyID string `json:"companyId"`
}

type resetPasswordBody struct {
	NewPassword string `json:"newPassword"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func cacheable(request Request, err error) (Request, error) {
	request.Cacheable = err == nil
	return request, err
}

func (e Endpoints) ListEmployees(companyID string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodPost, e.EmployeeListURL(), companyBody{CompanyID: companyID}))
}

func (e Endpoints) GetEmployee(id string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodGet, e.EmployeeURL(id), nil))
}

func (e Endpoints) RegisterEmployee(companyID string, employee NewEmployeeRequest) (Request, error) {
	employee.CompanyID = companyID
	return newJSONRequest(http.MethodPost, e.EmployeeRegisterURL(), employee)
}

func (e Endpoints) UpdateEmployee(id string, update EmployeeUpdateRequest) (Request, error) {
	return newJSONRequest(http.MethodPut, e.EmployeeURL(id), update)
}

func (e Endpoints) DeleteEmployee(id string) (Request, error) {
	return newJSONRequest(http.MethodDelete, e.EmployeeURL(id), nil)
}

func (e Endpoints) ResetEmployeePassword(id, newPassword string) (Request, error) {
	return newJSONRequest(http.MethodPost, e.EmployeeResetPasswordURL(id), resetPasswordBody{NewPassword: newPassword})
}

func (e Endpoints) ListAllAttendance(companyID string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodPost, e.AttendanceAllURL(), companyBody{CompanyID: companyID}))
}

func (e Endpoints) GetAttendanceByDate(companyID, date string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodPost, e.AttendanceByDateURL(), dateBody{Date: date, CompanyID: companyID}))
}

func (e Endpoints) GetEmployeeAttendance(employeeID string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodGet, e.EmployeeAttendanceURL(employeeID), nil))
}

func (e Endpoints) GetConfig(companyID string) (Request, error) {
	request, err := cacheable(newJSONRequest(http.MethodGet, e.ConfigURL(), nil))
	if err != nil {
		return Request{}, err
	}
	request.Header.Set("X-Company-ID", companyID)
	return request, nil
}

// UpdateConfig sends the full configuration document. A non-empty etag is
// sent as If-Match.
func (e Endpoints) UpdateConfig(companyID string, document ConfigDocument, etag string) (Request, error) {
	request, err := newJSONRequest(http.MethodPut, e.ConfigURL(), document)
	if err != nil {
		return Request{}, err
	}
	request.Header.Set("X-Company-ID", companyID)
	if etag != "" {
		request.Header.Set("If-Match", etag)
	}
	return request, nil
}

func (e Endpoints) GetDashboard(companyID string) (Request, error) {
	return cacheable(newJSONRequest(http.MethodPost, e.DashboardURL(), companyBody{CompanyID: companyID}))
}

func (e Endpoints) Login(email, password string) (Request, error) {
	return newJSONRequest(http.MethodPost, e.LoginURL(), loginBody{Email: email, Password: password})
}

func (e Endpoints) RegisterCompany(company NewCompanyRequest) (Request, error) {
	return newJSONRequest(http.MethodPost, e.CompanyRegisterURL(), company)
}
