package app

import (
	"context"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
)

type ListAllAttendance func(ctx context.Context) ([]domain.AttendanceRecord, error)

func BuildListAllAttendance(backend *Backend, session authStateReader, notifier Notifier) ListAllAttendance {
	return func(ctx context.Context) ([]domain.AttendanceRecord, error) {
		const message = "failed to fetch attendance records"

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.ListAllAttendance(companyID)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		records, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeAttendanceRecords)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}
		return records, nil
	}
}

// GetAttendanceByDate returns at most one record per employee for the date
type GetAttendanceByDate func(ctx context.Context, date string) ([]domain.AttendanceRecord, error)

func BuildGetAttendanceByDate(backend *Backend, session authStateReader, notifier Notifier) GetAttendanceByDate {
	return func(ctx context.Context, date string) ([]domain.AttendanceRecord, error) {
		const message = "failed to fetch attendance for date"

		if err := validateVar(date, "required,datetime=2006-01-02"); err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.GetAttendanceByDate(companyID, date)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		records, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeOptionalAttendanceRecords)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}
		return domain.DedupeByEmployee(records), nil
	}
}

type GetEmployeeAttendance func(ctx context.Context, employeeID string) ([]domain.AttendanceRecord, error)

func BuildGetEmployeeAttendance(backend *Backend, notifier Notifier) GetEmployeeAttendance {
	return func(ctx context.Context, employeeID string) ([]domain.AttendanceRecord, error) {
		const message = "failed to fetch employee attendance"

		if err := validateVar(employeeID, "required"); err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.GetEmployeeAttendance(employeeID)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}

		records, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeOptionalAttendanceRecords)
		if err != nil {
			return nil, fail(ctx, notifier, message, err)
		}
		return records, nil
	}
}
