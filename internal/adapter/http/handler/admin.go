package handler

import (
	"context"
	"net/http"

	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
)

type AnalyticsService interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	WindowDays() int
}

type Admin struct {
	analytics AnalyticsService
	l         logger.Logger
}

func NewAdmin(service AnalyticsService, l logger.Logger) *Admin {
	return &Admin{
		analytics: service,
		l:         l,
	}
}

// Dashboard serves every dashboard aggregate for the trailing window.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "admin_dashboard")

	dashboard, err := h.analytics.Dashboard(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to build dashboard", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"dashboard":   dashboard,
		"window_days": h.analytics.WindowDays(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
