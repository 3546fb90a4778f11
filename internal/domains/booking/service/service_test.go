package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sparkle/config"
	"sparkle/infras/otel/mocks"
	eventsMocks "sparkle/internal/domains/booking/events/mocks"
	bookingMocks "sparkle/internal/domains/booking/mocks"
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"sparkle/internal/domains/booking/service"
	customerMocks "sparkle/internal/domains/customer/mocks"
	teamMocks "sparkle/internal/domains/team/mocks"
	cacheMocks "sparkle/shared/cache/mocks"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
)

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCustomerRepo := customerMocks.NewMockCustomer(ctrl)
	mockMemberRepo := teamMocks.NewMockMember(ctrl)
	mockBus := eventsMocks.NewMockBus(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	// Cache invalidation and event publishing run async after a
	// successful write.
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockBus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockCustomerRepo, mockMemberRepo, mockBus, cfg, mockCache, mockOtel)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")

	bookingID := "booking-id-123"
	teamAssigned := model.Booking{ID: bookingID, TeamID: stringPtr("team-1")}
	staffAssigned := model.Booking{ID: bookingID, StaffID: stringPtr("staff-1")}

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "reassign from team to staff",
			req: dto.UpdateBookingRequest{
				StaffID: stringPtr("staff-9"),
				TeamID:  stringPtr(""),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(teamAssigned, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						staffID, _ := fields[model.FieldStaffID].(*string)
						teamID, _ := fields[model.FieldTeamID].(*string)

						if assert.NotNil(t, staffID) {
							assert.Equal(t, "staff-9", *staffID)
						}
						assert.Nil(t, teamID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "assigning staff without clearing the team is rejected",
			req: dto.UpdateBookingRequest{
				StaffID: stringPtr("staff-9"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(teamAssigned, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "unassign staff leaves the booking unassigned",
			req: dto.UpdateBookingRequest{
				StaffID: stringPtr(""),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffAssigned, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						staffID, _ := fields[model.FieldStaffID].(*string)
						teamID, _ := fields[model.FieldTeamID].(*string)

						assert.Nil(t, staffID)
						assert.Nil(t, teamID)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "patch without assignment fields leaves assignment untouched",
			req: dto.UpdateBookingRequest{
				Notes: stringPtr("bring the long ladder"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(teamAssigned, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						_, hasStaff := fields[model.FieldStaffID]
						_, hasTeam := fields[model.FieldTeamID]

						assert.False(t, hasStaff)
						assert.False(t, hasTeam)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			req: dto.UpdateBookingRequest{
				StaffID: stringPtr("staff-9"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(ctx, tt.req, bookingID)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
