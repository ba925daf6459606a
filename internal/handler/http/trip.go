package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/trip"
	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/response"
)

type TripHandler interface {
	GetDistance(w http.ResponseWriter, r *http.Request)
}

type TripHandlerImpl struct {
	tripService trip.Service
}

func NewTripHandler(tripService trip.Service) TripHandler {
	return &TripHandlerImpl{tripService: tripService}
}

// GetDistance implements TripHandler.
func (h *TripHandlerImpl) GetDistance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Trip ID is required", nil)
		return
	}

	distance, err := h.tripService.Distance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, distance)
}
