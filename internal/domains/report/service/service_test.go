package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sparkle/infras/otel/mocks"
	bookingMocks "sparkle/internal/domains/booking/mocks"
	bookingModel "sparkle/internal/domains/booking/model"
	customerMocks "sparkle/internal/domains/customer/mocks"
	"sparkle/internal/domains/report/model/dto"
	"sparkle/internal/domains/report/service"
)

func TestReportService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCustomerRepo := customerMocks.NewMockCustomer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockBookingRepo, mockCustomerRepo, mockOtel)

	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	booking := func(id, customerID, status, paymentStatus string, price float64) bookingModel.Booking {
		return bookingModel.Booking{
			ID:            id,
			CustomerID:    customerID,
			BookingDate:   date,
			Status:        status,
			PaymentStatus: paymentStatus,
			TotalPrice:    price,
		}
	}

	bookings := []bookingModel.Booking{
		booking("b-1", "c-1", bookingModel.StatusCompleted, bookingModel.PaymentStatusPaid, 1000),
		booking("b-2", "c-1", bookingModel.StatusCompleted, bookingModel.PaymentStatusUnpaid, 500),
		booking("b-3", "c-2", bookingModel.StatusCancelled, bookingModel.PaymentStatusUnpaid, 700),
		booking("b-4", "c-3", bookingModel.StatusNoShow, bookingModel.PaymentStatusUnpaid, 300),
	}

	mockBookingRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookings, nil)

	res, err := svc.Summary(context.Background(), dto.SummaryRequest{})

	assert.NoError(t, err)
	assert.Equal(t, 4, res.TotalBookings)

	// Cancelled and no-show visits never count toward revenue or
	// outstanding payments.
	assert.Equal(t, 1500.0, res.TotalRevenue)
	assert.Equal(t, 1000.0, res.CollectedRevenue)
	assert.Equal(t, 1, res.OutstandingCount)

	assert.Equal(t, 3, res.UniqueCustomers)
	assert.Equal(t, 1, res.BookingsByStatus[bookingModel.StatusCancelled])
	assert.Equal(t, 1, res.BookingsByStatus[bookingModel.StatusNoShow])
	assert.Equal(t, 3, res.PaymentsByStatus[bookingModel.PaymentStatusUnpaid])
}
