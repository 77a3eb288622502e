package handler

import (
	"net/http"
	"strconv"

	"github.com/Yun12-yu/smart-taxis/internal/adapter/http/handler/dto"
	"github.com/Yun12-yu/smart-taxis/internal/domain/types"
	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/Yun12-yu/smart-taxis/pkg/validator"
)

type Driver struct {
	dispatch DispatchService
	l        logger.Logger
}

func NewDriver(service DispatchService, l logger.Logger) *Driver {
	return &Driver{
		dispatch: service,
		l:        l,
	}
}

func (h *Driver) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_drivers")

	drivers, err := h.dispatch.ListDrivers(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list drivers", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"drivers": drivers}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// SetStatus is the administrative availability mutation.
func (h *Driver) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "set_driver_status")

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequestResponse(w, "invalid driver id")
		return
	}

	req := &dto.DriverStatusRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateDriverStatus(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	driver, err := h.dispatch.SetDriverStatus(ctx, id, types.DriverStatus(req.Status))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update driver status", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"driver": driver}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
