package app

import (
	"context"
	"fmt"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
)

type ListEmployees func(ctx context.Context) ([]domain.Employee, error)

func BuildListEmployees(backend *Backend, session authStateReader, notifier Notifier) ListEmployees {
	return func(ctx context.Context) ([]domain.Employee, error) {
		const message = "failed to fetch employees"

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.ListEmployees(companyID)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		employees, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeEmployees)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}
		return employees, nil
	}
}

type GetEmployee func(ctx context.Context, employeeID string) (domain.Employee, error)

func BuildGetEmployee(backend *Backend, notifier Notifier) GetEmployee {
	return func(ctx context.Context, employeeID string) (domain.Employee, error) {
		const message = "failed to fetch employee details"

		if err := validateVar(employeeID, "required"); err != nil {
			return domain.Employee{}, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.GetEmployee(employeeID)
		if err != nil {
			return domain.Employee{}, fail(ctx, notifier, message, err)
		}

		employee, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeEmployee)
		if err != nil {
			return domain.Employee{}, fail(ctx, notifier, message, err)
		}
		return employee, nil
	}
}

type RegisterEmployee func(ctx context.Context, employee domain.NewEmployee) error

func BuildRegisterEmployee(backend *Backend, session authStateReader, notifier Notifier) RegisterEmployee {
	return func(ctx context.Context, employee domain.NewEmployee) error {
		const message = "failed to register employee"

		if err := validateInput(employee); err != nil {
			return fail(ctx, notifier, message, err)
		}

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.RegisterEmployee(companyID, hrapi.NewEmployeeRequestFrom(employee))
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		if _, err := backend.send(ctx, request, 0, false); err != nil {
			return fail(ctx, notifier, message, mapStatus(err))
		}

		backend.invalidateURLs(backend.endpoints.EmployeeListURL(), backend.endpoints.DashboardURL())

		notifier.Success(ctx, fmt.Sprintf("Employee %s registered", employee.Name))
		return nil
	}
}

// invalidateEmployee drops every cached read affected by a change to the employee
func invalidateEmployee(backend *Backend, employeeID string) {
	backend.invalidateURLs(
		backend.endpoints.EmployeeListURL(),
		backend.endpoints.EmployeeURL(employeeID),
		backend.endpoints.DashboardURL(),
	)
}

type UpdateEmployee func(ctx context.Context, employeeID string, update domain.EmployeeUpdate) error

func BuildUpdateEmployee(backend *Backend, notifier Notifier) UpdateEmployee {
	return func(ctx context.Context, employeeID string, update domain.EmployeeUpdate) error {
		const message = "failed to update employee"

		if err := validateVar(employeeID, "required"); err != nil {
			return fail(ctx, notifier, message, err)
		}
		if err := validateInput(update); err != nil {
			return fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.UpdateEmployee(employeeID, hrapi.EmployeeUpdateRequestFrom(update))
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		if _, err := backend.send(ctx, request, 0, false); err != nil {
			return fail(ctx, notifier, message, mapStatus(err))
		}

		invalidateEmployee(backend, employeeID)

		notifier.Success(ctx, "Employee updated")
		return nil
	}
}

type DeleteEmployee func(ctx context.Context, employeeID string) error

func BuildDeleteEmployee(backend *Backend, notifier Notifier) DeleteEmployee {
	return func(ctx context.Context, employeeID string) error {
		const message = "failed to delete employee"

		if err := validateVar(employeeID, "required"); err != nil {
			return fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.DeleteEmployee(employeeID)
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		if _, err := backend.send(ctx, request, 0, false); err != nil {
			return fail(ctx, notifier, message, mapStatus(err))
		}

		invalidateEmployee(backend, employeeID)

		notifier.Success(ctx, "Employee deleted")
		return nil
	}
}

type ResetEmployeePassword func(ctx context.Context, employeeID, newPassword string) error

func BuildResetEmployeePassword(backend *Backend, notifier Notifier) ResetEmployeePassword {
	return func(ctx context.Context, employeeID, newPassword string) error {
		const message = "failed to reset password"

		if err := validateVar(employeeID, "required"); err != nil {
			return fail(ctx, notifier, message, err)
		}
		if err := validateVar(newPassword, "required,min=6"); err != nil {
			return fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.ResetEmployeePassword(employeeID, newPassword)
		if err != nil {
			return fail(ctx, notifier, message, err)
		}

		// Passwords are not part of any cached read
		if _, err := backend.send(ctx, request, 0, false); err != nil {
			return fail(ctx, notifier, message, mapStatus(err))
		}

		notifier.Success(ctx, "Password reset")
		return nil
	}
}
