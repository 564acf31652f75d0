// Package handler provides HTTP handlers for the HaulRoute API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/haulroute/haulroute/internal/api/middleware"
	"github.com/haulroute/haulroute/internal/api/models"
	"github.com/haulroute/haulroute/internal/api/response"
	"github.com/haulroute/haulroute/internal/trip"
)

// TripSimulator runs a trip feasibility simulation.
type TripSimulator interface {
	Simulate(ctx context.Context, req trip.Request) (*trip.Result, error)
}

// SimulatorFactory builds a simulator bound to a provider credential. The
// handler calls it per request so callers can supply their own token.
type SimulatorFactory func(apiKey string) TripSimulator

// TripHandler handles trip simulation endpoints.
type TripHandler struct {
	newSimulator SimulatorFactory
	validate     *validator.Validate
	log          zerolog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(factory SimulatorFactory, log zerolog.Logger) *TripHandler {
	validate := validator.New()
	// Report field errors by their JSON names, not Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &TripHandler{
		newSimulator: factory,
		validate:     validate,
		log:          log,
	}
}

// SimulateTrip handles POST /v1/trips:simulate.
func (h *TripHandler) SimulateTrip(w http.ResponseWriter, r *http.Request) {
	var input models.SimulateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.ValidationError(w, r, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			response.ValidationError(w, r, "Missing required field: "+fieldErrors[0].Field())
			return
		}
		response.ValidationError(w, r, "invalid request body")
		return
	}

	simulator := h.newSimulator(input.GeoapifyToken)

	result, err := simulator.Simulate(r.Context(), trip.Request{
		CurrentLocation: input.CurrentLocation,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		CycleUsedHours:  float64(input.CurrentCycleUsed),
	})
	if err != nil {
		h.writeSimulateError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// writeSimulateError maps simulation failures to the wire error shape.
// Cycle exhaustion and provider lookup failures are client-correctable, so
// they surface as validation errors with the underlying message.
func (h *TripHandler) writeSimulateError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	if errors.Is(err, trip.ErrInsufficientCycleHours) {
		response.ValidationError(w, r, err.Error())
		return
	}

	var tripErr *trip.Error
	if errors.As(err, &tripErr) {
		h.log.Warn().
			Str("request_id", requestID).
			Str("stage", string(tripErr.Stage)).
			Err(err).
			Msg("trip simulation failed")
		response.ValidationError(w, r, tripErr.Message)
		return
	}

	h.log.Error().
		Str("request_id", requestID).
		Err(err).
		Msg("trip simulation failed unexpectedly")
	response.InternalError(w, r)
}
