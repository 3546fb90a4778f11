package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sparkle/infras/otel"
	"sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/domains/payment/service"
	"sparkle/shared/constant"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"
)

const requestParamBookingID = "bookingId"

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/{bookingId}/qr", handler.GetQR)
		routerGroup.Post("/{bookingId}/slip", handler.UploadSlip)
		routerGroup.Post("/{bookingId}/review", handler.ReviewSlip)
	})
}

// GetQR returns a PromptPay QR code for a booking's total price.
// @Summary Get a PromptPay QR code
// @Description Generate a PromptPay QR code PNG for the booking's total price.
// @Tags Payment
// @Produce image/png
// @Param bookingId path string true "Booking ID"
// @Success 200 {string} binary "QR code PNG"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{bookingId}/qr [get]
// @Security BearerAuth
func (handler *Handler) GetQR(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQR")
	defer scope.End()

	bookingID := chi.URLParam(r, requestParamBookingID)

	png, err := handler.service.QRImage(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate payment qr")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment QR generated successfully")

	response.WithFile(w, constant.ContentTypePNG, bookingID+".png", png)
}

// UploadSlip stores a payment slip image for a booking and marks its
// payment as pending review.
// @Summary Upload a payment slip
// @Description Upload a transfer slip image for a booking. The payment moves to pending_review.
// @Tags Payment
// @Accept multipart/form-data
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param slip formData file true "Slip image"
// @Success 200 {object} response.Data[dto.SlipResponse] "Updated payment state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{bookingId}/slip [post]
// @Security BearerAuth
func (handler *Handler) UploadSlip(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadSlip")
	defer scope.End()

	bookingID := chi.URLParam(r, requestParamBookingID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile("slip")
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read slip file")

		response.WithError(w, err)

		return
	}

	defer file.Close()

	if err := validator.ValidateVar(*fileHeader, "maxfilesize=5,mimetypes=image/jpeg image/png image/webp"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate slip file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadSlip(ctx, bookingID, file, fileHeader)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload payment slip")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment slip uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// ReviewSlip settles a payment pending review.
// @Summary Review a payment slip
// @Description Approve or reject a payment slip under review.
// @Tags Payment
// @Accept json
// @Produce json
// @Param bookingId path string true "Booking ID"
// @Param request body dto.ReviewRequest true "Review decision"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Updated payment state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{bookingId}/review [post]
// @Security BearerAuth
func (handler *Handler) ReviewSlip(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewSlip")
	defer scope.End()

	bookingID := chi.URLParam(r, requestParamBookingID)

	req := dto.ReviewRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Review(ctx, bookingID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review payment slip")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment slip reviewed successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
