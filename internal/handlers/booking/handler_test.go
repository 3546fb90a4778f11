package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sparkle/infras/otel/mocks"
	"sparkle/internal/domains/booking/events"
	serviceMocks "sparkle/internal/domains/booking/service/mocks"
	"sparkle/internal/handlers/booking"
	"sparkle/shared/constant"
)

// noFlushWriter hides the Flush method a ResponseRecorder would expose.
type noFlushWriter struct {
	http.ResponseWriter
}

func streamRequest() *http.Request {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleStaff)
	ctx = context.WithValue(ctx, constant.ContextKeyStaffID, "staff-id-456")

	return httptest.NewRequest(http.MethodGet, "/v1/bookings/events", nil).WithContext(ctx)
}

func TestBookingHandler_StreamEvents(t *testing.T) {
	t.Run("streams relevant events until the bus closes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := serviceMocks.NewMockBooking(ctrl)
		handler := booking.New(mockService, mocks.NewOtel())

		event := events.BookingEvent{
			Type:       events.EventCreated,
			BookingID:  "booking-id-123",
			CustomerID: "customer-id-789",
		}

		stream := make(chan events.BookingEvent, 1)
		stream <- event
		close(stream)

		mockService.EXPECT().
			Events(gomock.Any()).
			Return((<-chan events.BookingEvent)(stream), func() {})

		mockService.EXPECT().
			RelevantTo(gomock.Any(), event, constant.RoleStaff, "staff-id-456").
			Return(true, nil)

		recorder := httptest.NewRecorder()
		handler.StreamEvents(recorder, streamRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, constant.ContentTypeEventStream, recorder.Header().Get(constant.RequestHeaderContentType))
		assert.Contains(t, recorder.Body.String(), "event: created")
		assert.Contains(t, recorder.Body.String(), "booking-id-123")
		assert.True(t, recorder.Flushed)
	})

	t.Run("irrelevant events are dropped from the stream", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := serviceMocks.NewMockBooking(ctrl)
		handler := booking.New(mockService, mocks.NewOtel())

		event := events.BookingEvent{
			Type:      events.EventUpdated,
			BookingID: "booking-id-999",
		}

		stream := make(chan events.BookingEvent, 1)
		stream <- event
		close(stream)

		mockService.EXPECT().
			Events(gomock.Any()).
			Return((<-chan events.BookingEvent)(stream), func() {})

		mockService.EXPECT().
			RelevantTo(gomock.Any(), event, constant.RoleStaff, "staff-id-456").
			Return(false, nil)

		recorder := httptest.NewRecorder()
		handler.StreamEvents(recorder, streamRequest())

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "booking-id-999")
	})

	t.Run("writer without flush support is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockService := serviceMocks.NewMockBooking(ctrl)
		handler := booking.New(mockService, mocks.NewOtel())

		recorder := httptest.NewRecorder()
		handler.StreamEvents(noFlushWriter{recorder}, streamRequest())

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
