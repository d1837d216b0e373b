package inventory

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"lodge/infras/otel"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/internal/domains/inventory/service"
	"lodge/internal/domains/sweeper"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/validator"
	"lodge/transport/http/response"
)

type Handler struct {
	service service.Inventory
	sweeper sweeper.Sweeper
	otel    otel.Otel
}

func New(service service.Inventory, sweeper sweeper.Sweeper, otel otel.Otel) Handler {
	return Handler{
		service: service,
		sweeper: sweeper,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inventory", func(routerGroup chi.Router) {
		routerGroup.Post("/holds", handler.HoldStay)
		routerGroup.Post("/holds/{booking_id}/confirm", handler.ConfirmStay)
		routerGroup.Post("/holds/{booking_id}/release", handler.ReleaseStay)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/locks", handler.GetLocks)
		routerGroup.Get("/audits", handler.GetAudits)
		routerGroup.Post("/audits/export", handler.ExportAudits)
		routerGroup.Post("/sweep", handler.Sweep)
	})
}

// HoldStay places a hold on every night of the requested stay.
func (handler *Handler) HoldStay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HoldStay")
	defer scope.End()

	req := dto.HoldStayRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.HoldStay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to hold stay")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// ConfirmStay converts the booking's hold into confirmed inventory.
func (handler *Handler) ConfirmStay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmStay")
	defer scope.End()

	req := dto.ConfirmStayRequest{}
	req.BookingID = chi.URLParam(request, constant.RequestParamBookingID)

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ConfirmStay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to confirm stay")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ReleaseStay returns the booking's rooms to the sellable pool.
func (handler *Handler) ReleaseStay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReleaseStay")
	defer scope.End()

	req := dto.ReleaseStayRequest{}
	req.BookingID = chi.URLParam(request, constant.RequestParamBookingID)

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ReleaseStay(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to release stay")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailability returns per-day counters for a room type over a date range.
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	roomTypeID := request.URL.Query().Get(constant.RequestParamRoomTypeID)
	if roomTypeID == "" {
		response.WithError(writer, failure.BadRequestFromString("room_type_id is required"))

		return
	}

	from, err := shared.ParseDay(request.URL.Query().Get(constant.RequestParamFrom))
	if err != nil {
		response.WithError(writer, failure.InvalidDateRange)

		return
	}

	to, err := shared.ParseDay(request.URL.Query().Get(constant.RequestParamTo))
	if err != nil {
		response.WithError(writer, failure.InvalidDateRange)

		return
	}

	res, err := handler.service.Availability(ctx, roomTypeID, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room_type_id", roomTypeID).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetLocks lists the ledger entries of a booking, newest first.
func (handler *Handler) GetLocks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocks")
	defer scope.End()

	bookingID := request.URL.Query().Get(constant.RequestParamBookingID)
	if bookingID == "" {
		response.WithError(writer, failure.BadRequestFromString("booking_id is required"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Locks(ctx, queryParams, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get locks")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAudits lists the audit trail of one inventory row, newest first.
func (handler *Handler) GetAudits(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAudits")
	defer scope.End()

	inventoryID := request.URL.Query().Get(constant.RequestParamInventoryID)
	if inventoryID == "" {
		response.WithError(writer, failure.BadRequestFromString("inventory_id is required"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Audits(ctx, queryParams, inventoryID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("inventory_id", inventoryID).Msg("failed to get audits")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ExportAudits archives the audit ledger for a date range to object storage.
func (handler *Handler) ExportAudits(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportAudits")
	defer scope.End()

	req := dto.ExportAuditsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ExportAudits(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export audits")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Sweep triggers one expired-hold sweep pass on demand.
func (handler *Handler) Sweep(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Sweep")
	defer scope.End()

	batchSize := 0
	if raw := request.URL.Query().Get(constant.RequestParamLimit); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.WithError(writer, failure.InvalidLimitParam)

			return
		}

		batchSize = parsed
	}

	res, err := handler.sweeper.ProcessExpiredHolds(ctx, batchSize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep expired holds")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
