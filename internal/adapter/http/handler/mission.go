package handler

import (
	"net/http"

	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
	"github.com/google/uuid"
)

type Mission struct {
	dispatch DispatchService
	l        logger.Logger
}

func NewMission(service DispatchService, l logger.Logger) *Mission {
	return &Mission{
		dispatch: service,
		l:        l,
	}
}

// Get serves a single mission, the endpoint clients poll to follow progress.
func (h *Mission) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_mission")

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequestResponse(w, "invalid mission id")
		return
	}

	mission, err := h.dispatch.GetMission(ctx, id)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"mission": mission}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// List serves the active missions plus the most recently completed ones.
func (h *Mission) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_missions")

	missions, err := h.dispatch.ListMissions(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list missions", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"missions": missions}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
