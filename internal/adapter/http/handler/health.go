package handler

import (
	"net/http"

	"github.com/Yun12-yu/smart-taxis/pkg/logger"
	wrap "github.com/Yun12-yu/smart-taxis/pkg/logger/wrapper"
)

type Health struct {
	serviceName string
	storage     string
	log         logger.Logger
}

func NewHealth(serviceName, storage string, log logger.Logger) *Health {
	return &Health{
		serviceName: serviceName,
		storage:     storage,
		log:         log,
	}
}

// HealthCheck reports liveness and which storage backend is active.
func (a *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	response := envelope{
		"status": "available",
		"system_info": map[string]string{
			"service-name": a.serviceName,
			"storage":      a.storage,
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.log.Error(ctx, "healthcheck", err)
		return
	}
}
