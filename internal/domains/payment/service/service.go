package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"

	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/infras/s3"
	bookingModel "sparkle/internal/domains/booking/model"
	bookingService "sparkle/internal/domains/booking/service"
	"sparkle/internal/domains/payment/model/dto"
	"sparkle/internal/domains/payment/promptpay"
	settingsService "sparkle/internal/domains/settings/service"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
)

const (
	slipDirectory = "payment-slips"
	qrImageSize   = 512

	decisionApprove = "approve"
)

type Payment interface {
	QRImage(ctx context.Context, bookingID string) ([]byte, error)
	QRPayload(ctx context.Context, bookingID string) (dto.QRResponse, error)
	UploadSlip(ctx context.Context, bookingID string, file multipart.File, fileHeader *multipart.FileHeader) (dto.SlipResponse, error)
	Review(ctx context.Context, bookingID string, req dto.ReviewRequest) (dto.ReviewResponse, error)
}

type serviceImpl struct {
	bookings bookingService.Booking
	settings settingsService.Settings
	s3       s3.S3
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingService.Booking, settings settingsService.Settings, s3 s3.S3, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		bookings: bookings,
		settings: settings,
		s3:       s3,
		cfg:      cfg,
		otel:     otel,
	}
}

// QRPayload builds the PromptPay payload for a booking's outstanding
// amount, using the business's configured PromptPay ID.
func (s *serviceImpl) QRPayload(ctx context.Context, bookingID string) (res dto.QRResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QRPayload")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.GetModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	settings, err := s.settings.GetModel(ctx)
	if err != nil {
		return res, err
	}

	if settings.PromptPayID == constant.Empty {
		return res, failure.BadRequestFromString("promptpay id is not configured") // nolint:wrapcheck
	}

	payload, err := promptpay.Payload(settings.PromptPayID, booking.TotalPrice)
	if err != nil {
		log.Error().Err(err).Msg("failed to build promptpay payload")

		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	res.BookingID = booking.ID
	res.Amount = booking.TotalPrice
	res.Payload = payload

	return res, nil
}

// QRImage renders the payload as a PNG for clients that want the image
// directly.
func (s *serviceImpl) QRImage(ctx context.Context, bookingID string) (png []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QRImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload, err := s.QRPayload(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	png, err = qrcode.Encode(payload.Payload, qrcode.Medium, qrImageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode promptpay qr")

		return nil, fmt.Errorf("failed to encode promptpay qr: %w", err)
	}

	return png, nil
}

// UploadSlip stores a customer's transfer slip and moves the booking to
// pending_review.
func (s *serviceImpl) UploadSlip(ctx context.Context, bookingID string, file multipart.File, fileHeader *multipart.FileHeader) (res dto.SlipResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadSlip")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.GetModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.PaymentStatus == bookingModel.PaymentStatusPaid {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	fileName := booking.ID + strings.ToLower(path.Ext(fileHeader.Filename))

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, slipDirectory, file, fileHeader, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload payment slip")

		return res, fmt.Errorf("failed to upload payment slip: %w", err)
	}

	if err = s.bookings.UpdatePayment(ctx, booking.ID, bookingModel.PaymentStatusPendingReview, &url); err != nil {
		return res, err
	}

	res.BookingID = booking.ID
	res.PaymentStatus = bookingModel.PaymentStatusPendingReview
	res.SlipURL = url

	return res, nil
}

// Review settles a pending slip: approve marks the booking paid,
// reject sends it back to unpaid so a new slip can be submitted.
func (s *serviceImpl) Review(ctx context.Context, bookingID string, req dto.ReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Review")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.GetModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.PaymentStatus != bookingModel.PaymentStatusPendingReview {
		return res, failure.Conflict("booking has no payment pending review") // nolint:wrapcheck
	}

	status := bookingModel.PaymentStatusUnpaid
	if req.Decision == decisionApprove {
		status = bookingModel.PaymentStatusPaid
	}

	if err = s.bookings.UpdatePayment(ctx, booking.ID, status, nil); err != nil {
		return res, err
	}

	res.BookingID = booking.ID
	res.PaymentStatus = status

	return res, nil
}
