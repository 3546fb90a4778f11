package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sparkle/infras/otel"
	"sparkle/internal/domains/notification/model/dto"
	"sparkle/internal/domains/notification/service"
	"sparkle/shared/constant"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Post("/booking-confirmation", handler.SendBookingConfirmation)
	})
}

// SendBookingConfirmation emails a booking confirmation to the customer.
// @Summary Send a booking confirmation email
// @Description Email the booking details to the customer. Skipped when email notifications are disabled.
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.BookingConfirmationRequest true "Booking and optional recipient override"
// @Success 200 {object} response.Data[dto.NotificationResponse] "Send result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/notifications/booking-confirmation [post]
// @Security BearerAuth
func (handler *Handler) SendBookingConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendBookingConfirmation")
	defer scope.End()

	req := dto.BookingConfirmationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SendBookingConfirmation(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send booking confirmation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking confirmation processed by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
