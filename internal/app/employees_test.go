package app_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Amund211/rollcall/internal/app"
	"github.com/Amund211/rollcall/internal/domain"
)

const employeesBody = `{"success":true,"data":[
	{"id":"E1","name":"Asha Rao","email":"asha@example.com","employee_shift_hours":{"start":"09:00","end":"18:00"}},
	{"id":"E2","first_name":"Vikram","last_name":"Singh"}
]}`

const employeeBody = `{"success":true,"data":{"id":"E1","name":"Asha Rao","department":"Engineering"}}`

const employeeDashboardBody = `{"success":true,"data":{"attendance_summary":{"total_employees":2,"present_count":1},"recent_activity":[],"weekly_overview":[]}}`

func TestListEmployees(t *testing.T) {
	t.Parallel()

	t.Run("second call is served from the cache", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		client.respond(http.MethodPost, endpoints.EmployeeListURL(), employeesBody)
		notifier := &mockNotifier{}
		listEmployees := app.BuildListEmployees(backend, loggedIn(), notifier)

		employees, err := listEmployees(t.Context())
		require.NoError(t, err)
		require.Len(t, employees, 2)
		require.Equal(t, "Asha Rao", employees[0].DisplayName())
		require.Equal(t, "Vikram Singh", employees[1].DisplayName())

		again, err := listEmployees(t.Context())
		require.NoError(t, err)
		require.Equal(t, employees, again)

		require.Equal(t, 1, client.count(http.MethodPost, endpoints.EmployeeListURL()))
		require.JSONEq(t, `{"companyId":"company-1"}`, string(client.last(http.MethodPost, endpoints.EmployeeListURL()).Body))
		require.Empty(t, notifier.errors)
	})

	t.Run("missing company id", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		notifier := &mockNotifier{}
		listEmployees := app.BuildListEmployees(backend, &mockSession{}, notifier)

		_, err := listEmployees(t.Context())
		require.ErrorIs(t, err, domain.ErrMissingCompanyID)
		require.Zero(t, client.total())
		require.Len(t, notifier.errors, 1)
		require.ErrorIs(t, notifier.errors[0], domain.ErrMissingCompanyID)
	})

	t.Run("transport error is not cached", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		client.fail(http.MethodPost, endpoints.EmployeeListURL(), http.StatusInternalServerError)
		notifier := &mockNotifier{}
		listEmployees := app.BuildListEmployees(backend, loggedIn(), notifier)

		_, err := listEmployees(t.Context())
		require.ErrorIs(t, err, domain.ErrTransport)
		require.ErrorContains(t, err, "failed to fetch employees")

		client.respond(http.MethodPost, endpoints.EmployeeListURL(), employeesBody)
		employees, err := listEmployees(t.Context())
		require.NoError(t, err)
		require.Len(t, employees, 2)
		require.Equal(t, 2, client.count(http.MethodPost, endpoints.EmployeeListURL()))
	})

	t.Run("invalid response is evicted", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		client.respond(http.MethodPost, endpoints.EmployeeListURL(), `{"success":true}`)
		listEmployees := app.BuildListEmployees(backend, loggedIn(), &mockNotifier{})

		_, err := listEmployees(t.Context())
		require.ErrorIs(t, err, domain.ErrInvalidResponse)

		_, err = listEmployees(t.Context())
		require.ErrorIs(t, err, domain.ErrInvalidResponse)
		require.Equal(t, 2, client.count(http.MethodPost, endpoints.EmployeeListURL()))
	})
}

func TestGetEmployee(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		client.respond(http.MethodGet, endpoints.EmployeeURL("E1"), employeeBody)
		getEmployee := app.BuildGetEmployee(backend, &mockNotifier{})

		employee, err := getEmployee(t.Context(), "E1")
		require.NoError(t, err)
		require.Equal(t, "Engineering", employee.Department)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		client.fail(http.MethodGet, endpoints.EmployeeURL("E9"), http.StatusNotFound)
		getEmployee := app.BuildGetEmployee(backend, &mockNotifier{})

		_, err := getEmployee(t.Context(), "E9")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		getEmployee := app.BuildGetEmployee(backend, &mockNotifier{})

		_, err := getEmployee(t.Context(), "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		require.Zero(t, client.total())
	})
}

// primeEmployeeReads fills the cache with the reads an employee change affects,
// plus one it does not
func primeEmployeeReads(t *testing.T, backend *app.Backend, client *mockClient) (app.ListEmployees, app.GetEmployee, app.GetDashboard, app.ListAllAttendance) {
	t.Helper()

	client.respond(http.MethodPost, endpoints.EmployeeListURL(), employeesBody)
	client.respond(http.MethodGet, endpoints.EmployeeURL("E1"), employeeBody)
	client.respond(http.MethodPost, endpoints.DashboardURL(), employeeDashboardBody)
	client.respond(http.MethodPost, endpoints.AttendanceAllURL(), `{"success":true,"data":[]}`)

	session := loggedIn()
	notifier := &mockNotifier{}
	listEmployees := app.BuildListEmployees(backend, session, notifier)
	getEmployee := app.BuildGetEmployee(backend, notifier)
	getDashboard := app.BuildGetDashboard(backend, session, notifier)
	listAllAttendance := app.BuildListAllAttendance(backend, session, notifier)

	_, err := listEmployees(t.Context())
	require.NoError(t, err)
	_, err = getEmployee(t.Context(), "E1")
	require.NoError(t, err)
	_, err = getDashboard(t.Context())
	require.NoError(t, err)
	_, err = listAllAttendance(t.Context())
	require.NoError(t, err)

	return listEmployees, getEmployee, getDashboard, listAllAttendance
}

func TestEmployeeWritesInvalidate(t *testing.T) {
	t.Parallel()

	rereadAll := func(t *testing.T, listEmployees app.ListEmployees, getEmployee app.GetEmployee, getDashboard app.GetDashboard, listAllAttendance app.ListAllAttendance) {
		t.Helper()

		_, err := listEmployees(t.Context())
		require.NoError(t, err)
		_, err = getEmployee(t.Context(), "E1")
		require.NoError(t, err)
		_, err = getDashboard(t.Context())
		require.NoError(t, err)
		_, err = listAllAttendance(t.Context())
		require.NoError(t, err)
	}

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		listEmployees, getEmployee, getDashboard, listAllAttendance := primeEmployeeReads(t, backend, client)
		client.respond(http.MethodPut, endpoints.EmployeeURL("E1"), `{"success":true,"data":null}`)
		notifier := &mockNotifier{}
		updateEmployee := app.BuildUpdateEmployee(backend, notifier)

		department := "Sales"
		err := updateEmployee(t.Context(), "E1", domain.EmployeeUpdate{Department: &department})
		require.NoError(t, err)
		require.Equal(t, []string{"Employee updated"}, notifier.successes)
		require.JSONEq(t, `{"department":"Sales"}`, string(client.last(http.MethodPut, endpoints.EmployeeURL("E1")).Body))

		rereadAll(t, listEmployees, getEmployee, getDashboard, listAllAttendance)

		require.Equal(t, 2, client.count(http.MethodPost, endpoints.EmployeeListURL()))
		require.Equal(t, 2, client.count(http.MethodGet, endpoints.EmployeeURL("E1")))
		require.Equal(t, 2, client.count(http.MethodPost, endpoints.DashboardURL()))
		require.Equal(t, 1, client.count(http.MethodPost, endpoints.AttendanceAllURL()))
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		listEmployees, getEmployee, getDashboard, listAllAttendance := primeEmployeeReads(t, backend, client)
		client.respond(http.MethodDelete, endpoints.EmployeeURL("E1"), `{"success":true}`)
		deleteEmployee := app.BuildDeleteEmployee(backend, &mockNotifier{})

		require.NoError(t, deleteEmployee(t.Context(), "E1"))

		rereadAll(t, listEmployees, getEmployee, getDashboard, listAllAttendance)

		require.Equal(t, 2, client.count(http.MethodPost, endpoints.EmployeeListURL()))
		require.Equal(t, 2, client.count(http.MethodGet, endpoints.EmployeeURL("E1")))
		require.Equal(t, 2, client.count(http.MethodPost, endpoints.DashboardURL()))
		require.Equal(t, 1, client.count(http.MethodPost, endpoints.AttendanceAllURL()))
	})

	t.Run("register", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		listEmployees, getEmployee, getDashboard, listAllAttendance := primeEmployeeReads(t, backend, client)
		client.respond(http.MethodPost, endpoints.EmployeeRegisterURL(), `{"success":true,"data":{"id":"E3"}}`)
		registerEmployee := app.BuildRegisterEmployee(backend, loggedIn(), &mockNotifier{})

		err := registerEmployee(t.Context(), domain.NewEmployee{
			Name:       "Meera Nair",
			Email:      "meera@example.com",
			Password:   "secret1",
			ShiftStart: "09:00 AM",
			ShiftEnd:   "06:00 PM",
		})
		require.NoError(t, err)

		sent := client.last(http.MethodPost, endpoints.EmployeeRegisterURL())
		require.JSONEq(t, `{
			"name":"Meera Nair",
			"email":"meera@example.com",
			"password":"secret1",
			"employee_shift_hours":"09:00 AM - 06:00 PM",
			"companyId":"company-1"
		}`, string(sent.Body))

		rereadAll(t, listEmployees, getEmployee, getDashboard, listAllAttendance)

		require.Equal(t, 2, client.count(http.MethodPost, endpoints.EmployeeListURL()))
		require.Equal(t, 1, client.count(http.MethodGet, endpoints.EmployeeURL("E1")))
		require.Equal(t, 2, client.count(http.MethodPost, endpoints.DashboardURL()))
	})

	t.Run("failed write invalidates nothing", func(t *testing.T) {
		t.Parallel()

		backend, client := newBackend(t)
		listEmployees, getEmployee, getDashboard, listAllAttendance := primeEmployeeReads(t, backend, client)
		client.fail(http.MethodDelete, endpoints.EmployeeURL("E1"), http.StatusInternalServerError)
		notifier := &mockNotifier{}
		deleteEmployee := app.BuildDeleteEmployee(backend, notifier)

		err := deleteEmployee(t.Context(), "E1")
		require.ErrorIs(t, err, domain.ErrTransport)
		require.Len(t, notifier.errors, 1)
		require.Empty(t, notifier.successes)

		rereadAll(t, listEmployees, getEmployee, getDashboard, listAllAttendance)
		require.Equal(t, 1, client.count(http.MethodPost, endpoints.EmployeeListURL()))
	})
}

func TestRegisterEmployeeValidation(t *testing.T) {
	t.Parallel()

	valid := domain.NewEmployee{
		Name:       "Meera Nair",
		Email:      "meera@example.com",
		Password:   "secret1",
		ShiftStart: "09:00 AM",
		ShiftEnd:   "06:00 PM",
	}

	cases := []struct {
		name   string
		mutate func(*domain.NewEmployee)
	}{
		{name: "missing name", mutate: func(e *domain.NewEmployee) { e.Name = "" }},
		{name: "bad email", mutate: func(e *domain.NewEmployee) { e.Email = "meera" }},
		{name: "short password", mutate: func(e *domain.NewEmployee) { e.Password = "abc" }},
		{name: "missing shift", mutate: func(e *domain.NewEmployee) { e.ShiftEnd = "" }},
		{name: "bad date of birth", mutate: func(e *domain.NewEmployee) { e.DateOfBirth = "01/02/1990" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			backend, client := newBackend(t)
			registerEmployee := app.BuildRegisterEmployee(backend, loggedIn(), &mockNotifier{})

			employee := valid
			c.mutate(&employee)

			err := registerEmployee(t.Context(), employee)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			require.Zero(t, client.total())
		})
	}
}

func TestResetEmployeePassword(t *testing.T) {
	t.Parallel()

	backend, client := newBackend(t)
	client.respond(http.MethodPost, endpoints.EmployeeResetPasswordURL("E1"), `{"success":true}`)
	resetPassword := app.BuildResetEmployeePassword(backend, &mockNotifier{})

	require.NoError(t, resetPassword(t.Context(), "E1", "newpass1"))
	require.JSONEq(t, `{"newPassword":"newpass1"}`, string(client.last(http.MethodPost, endpoints.EmployeeResetPasswordURL("E1")).Body))

	err := resetPassword(t.Context(), "E1", "123")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	require.Equal(t, 1, client.total())
}
