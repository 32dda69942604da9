package app

import (
	"context"

	"github.com/Amund211/rollcall/internal/adapters/cache"
	"github.com/Amund211/rollcall/internal/adapters/hrapi"
	"github.com/Amund211/rollcall/internal/domain"
)

type GetDashboard func(ctx context.Context) (domain.DashboardSummary, error)

func BuildGetDashboard(backend *Backend, session authStateReader, notifier Notifier) GetDashboard {
	return func(ctx context.Context) (domain.DashboardSummary, error) {
		const message = "failed to fetch dashboard data"

		companyID, err := requireCompanyID(ctx, session)
		if err != nil {
			return domain.DashboardSummary{}, fail(ctx, notifier, message, err)
		}

		request, err := backend.endpoints.GetDashboard(companyID)
		if err != nil {
			return domain.DashboardSummary{}, fail(ctx, notifier, message, err)
		}

		summary, _, err := fetch(ctx, backend, request, cache.DefaultTTL, false, hrapi.DecodeDashboard)
		if err != nil {
			return domain.DashboardSummary{}, fail(ctx, notifier, message, err)
		}
		return summary, nil
	}
}
