package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Yun12-yu/smart-taxis/internal/adapter/http/handler/dto"
	"github.com/Yun12-yu/smart-taxis/internal/domain/models"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/internal/service/dispatch"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/Yun12-yu/smart-taxis/pkg/metrics"
	"github.com/Yun12-yu/smart-taxis/pkg/validator"
	"github.com/google/uuid"
)

type DispatchService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, *models.Mission, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetMission(ctx context.Context, id uuid.UUID) (*models.Mission, error)
	ListMissions(ctx context.Context) (*dispatch.MissionsOverview, error)
	ListDrivers(ctx context.Context) ([]models.Driver, error)
	SetDriverStatus(ctx context.Context, id int64, status types.DriverStatus) (*models.Driver, error)
	Status(ctx context.Context) (*models.SystemStatus, error)
	GetOverview(ctx context.Context) (*dispatch.Overview, error)
}

type Booking struct {
	dispatch DispatchService
	l        logger.Logger
}

func NewBooking(service DispatchService, l logger.Logger) *Booking {
	return &Booking{
		dispatch: service,
		l:        l,
	}
}

// Create handles the public booking form. When every driver is busy it
// answers 409 and echoes the request back so the client can retry it as-is.
func (h *Booking) Create(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "create_booking")

	req := &dto.CreateBookingRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateCreateBooking(v, req)
	if !v.Valid() {
		metrics.RecordBooking("validation_failed")
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, mission, err := h.dispatch.CreateBooking(ctx, req.ToModel())
	if err != nil {
		if errors.Is(err, types.ErrNoDriversAvailable) {
			metrics.RecordBooking("no_drivers")
			errorResponse(w, http.StatusConflict, envelope{
				"message": "no drivers available, please try again later",
				"request": req,
			})
			return
		}
		metrics.RecordBooking("error")
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to create booking", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"booking": booking,
		"mission": mission,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

func (h *Booking) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_booking")

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequestResponse(w, "invalid booking id")
		return
	}

	booking, err := h.dispatch.GetBooking(ctx, id)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Status serves the public aggregate counters.
func (h *Booking) Status(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "system_status")

	status, err := h.dispatch.Status(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to gather system status", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"status": status}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Overview serves the landing page payload.
func (h *Booking) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "overview")

	overview, err := h.dispatch.GetOverview(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to gather overview", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"overview": overview}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
