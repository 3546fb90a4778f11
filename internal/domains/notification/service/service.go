package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"

	"sparkle/infras/mailer"
	"sparkle/infras/otel"
	bookingService "sparkle/internal/domains/booking/service"
	customerModel "sparkle/internal/domains/customer/model"
	customerRepo "sparkle/internal/domains/customer/repository"
	"sparkle/internal/domains/notification/model/dto"
	settingsService "sparkle/internal/domains/settings/service"
	"sparkle/shared"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
)

const confirmationSubject = "Your booking is confirmed"

const confirmationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Booking confirmed</h2>
  <p>Hi {{.CustomerName}},</p>
  <p>{{.BusinessName}} has confirmed your booking.</p>
  <table cellpadding="4">
    <tr><td><strong>Date</strong></td><td>{{.BookingDate}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.StartTime}} &ndash; {{.EndTime}}</td></tr>
    {{if .JobName}}<tr><td><strong>Service</strong></td><td>{{.JobName}}</td></tr>{{end}}
    <tr><td><strong>Address</strong></td><td>{{.Address}}</td></tr>
    <tr><td><strong>Total</strong></td><td>{{printf "%.2f" .TotalPrice}}</td></tr>
  </table>
  {{if .BusinessPhone}}<p>Questions? Call us at {{.BusinessPhone}}.</p>{{end}}
  <p>{{.BusinessName}}</p>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("booking-confirmation").Parse(confirmationTemplate))

type confirmationData struct {
	CustomerName  string
	BookingDate   string
	StartTime     string
	EndTime       string
	JobName       string
	Address       string
	TotalPrice    float64
	BusinessName  string
	BusinessPhone string
}

type Notification interface {
	SendBookingConfirmation(ctx context.Context, req dto.BookingConfirmationRequest) (dto.NotificationResponse, error)
}

type serviceImpl struct {
	bookings bookingService.Booking
	custRepo customerRepo.Customer
	settings settingsService.Settings
	mailer   mailer.Mailer
	otel     otel.Otel
}

func New(bookings bookingService.Booking, custRepo customerRepo.Customer, settings settingsService.Settings, mailer mailer.Mailer, otel otel.Otel) Notification {
	return &serviceImpl{
		bookings: bookings,
		custRepo: custRepo,
		settings: settings,
		mailer:   mailer,
		otel:     otel,
	}
}

// SendBookingConfirmation emails the customer their booking details.
// When email notifications are disabled in the business settings the
// call succeeds without sending, so callers don't have to check the
// toggle themselves.
func (s *serviceImpl) SendBookingConfirmation(ctx context.Context, req dto.BookingConfirmationRequest) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendBookingConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.BookingID = req.BookingID

	settings, err := s.settings.GetModel(ctx)
	if err != nil {
		return res, err
	}

	if !settings.NotifyEnabled {
		scope.AddEvent("email notifications disabled, skipping")

		return res, nil
	}

	booking, err := s.bookings.GetModel(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	customer, err := s.customer(ctx, booking.CustomerID)
	if err != nil {
		return res, err
	}

	recipient := req.Email

	if recipient == constant.Empty {
		if customer.Email == nil || *customer.Email == constant.Empty {
			return res, failure.BadRequestFromString("customer has no email address") // nolint:wrapcheck
		}

		recipient = *customer.Email
	}

	data := confirmationData{
		CustomerName:  customer.Name,
		BookingDate:   booking.BookingDate.Format(constant.DateOnlyFormat),
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		Address:       booking.Address,
		TotalPrice:    booking.TotalPrice,
		BusinessName:  settings.BusinessName,
		BusinessPhone: settings.BusinessPhone,
	}

	if booking.JobName != nil {
		data.JobName = *booking.JobName
	}

	var body bytes.Buffer

	if err = confirmationTmpl.Execute(&body, data); err != nil {
		log.Error().Err(err).Msg("failed to render confirmation email")

		return res, fmt.Errorf("failed to render confirmation email: %w", err)
	}

	messageID, err := s.mailer.Send(ctx, []string{recipient}, confirmationSubject, body.String())
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to send confirmation email")

		return res, err
	}

	res.Sent = true
	res.MessageID = messageID
	res.Recipient = recipient

	return res, nil
}

func (s *serviceImpl) customer(ctx context.Context, id string) (customerModel.Customer, error) {
	customer, err := s.custRepo.Get(ctx, shared.FilterByID(id, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return customer, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return customer, nil
}
