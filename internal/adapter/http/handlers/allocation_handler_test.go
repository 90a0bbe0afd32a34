package handlers

import (
	"net/http"
	"strings"
	"testing"

	"transporte_xpto/internal/adapter/http/handlers/mocks"
	"transporte_xpto/internal/domain/allocation"
	"transporte_xpto/internal/domain/availability"
	"transporte_xpto/internal/domain/entities"
	"transporte_xpto/internal/usecase"

	"go.uber.org/mock/gomock"
)

func TestAllocationHandler_CheckAvailability(t *testing.T) {
	t.Run("missing date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAllocationUseCase(ctrl)
		h := NewAllocationHandler(uc)

		r := newRouter(coordActor)
		r.GET("/v1/availability", h.CheckAvailability)

		w := doJSON(r, http.MethodGet, "/v1/availability?start_time=08:00", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success describes conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIAllocationUseCase(ctrl)
		h := NewAllocationHandler(uc)

		r := newRouter(coordActor)
		r.GET("/v1/availability", h.CheckAvailability)

		uc.EXPECT().
			CheckAvailability(gomock.Any(), coordActor, usecase.AvailabilityQuery{
				Date:            "2025-03-10",
				StartTime:       "08:00",
				VehicleIDs:      []string{"v1", "v2"},
				DriverByVehicle: map[string]string{"v1": "d1"},
			}).
			Return([]availability.Result{
				{Vehicle: entities.Vehicle{ID: "v1"}, Available: true, SelectedDriverID: "d1"},
				{Vehicle: entities.Vehicle{ID: "v2"}, Conflict: &availability.Conflict{Reason: availability.ReasonInactive}},
			}, nil)

		w := doJSON(r, http.MethodGet, "/v1/availability?date=2025-03-10&start_time=08:00&vehicles=v1,v2&drivers=v1:d1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "vehicle inactive") {
			t.Fatalf("expected conflict reason, got %s", w.Body.String())
		}
	})
}

func TestAllocationHandler_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIAllocationUseCase(ctrl)
	h := NewAllocationHandler(uc)

	r := newRouter(coordActor)
	r.GET("/v1/allocation/suggest", h.Suggest)

	uc.EXPECT().
		Suggest(gomock.Any(), coordActor, usecase.SuggestQuery{Passengers: 45}).
		Return(allocation.Plan{RequestedPassengers: 45, CoveredPassengers: 45, CanFulfill: true}, nil)

	w := doJSON(r, http.MethodGet, "/v1/allocation/suggest?passengers=45", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"can_fulfill":true`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAllocationHandler_FindAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIAllocationUseCase(ctrl)
	h := NewAllocationHandler(uc)

	r := newRouter(coordActor)
	r.GET("/v1/allocation/available", h.FindAvailable)

	uc.EXPECT().
		FindAvailable(gomock.Any(), coordActor, gomock.Any()).
		Return(allocation.AvailablePlan{}, allocation.ErrInvalidPassengers)

	w := doJSON(r, http.MethodGet, "/v1/allocation/available?date=2025-03-10&start_time=08:00&passengers=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
