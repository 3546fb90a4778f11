package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sparkle/config"
	"sparkle/infras/otel/mocks"
	staffMocks "sparkle/internal/domains/staff/mocks"
	teamMocks "sparkle/internal/domains/team/mocks"
	"sparkle/internal/domains/team/model/dto"
	"sparkle/internal/domains/team/service"
	cacheMocks "sparkle/shared/cache/mocks"
	"sparkle/shared/constant"
	"sparkle/shared/failure"
)

func TestTeamService_AddMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTeamRepo := teamMocks.NewMockTeam(ctrl)
	mockMemberRepo := teamMocks.NewMockMember(ctrl)
	mockStaffRepo := staffMocks.NewMockStaff(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	// Cache invalidation runs async after a successful write.
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockTeamRepo, mockMemberRepo, mockStaffRepo, cfg, mockCache, mockOtel)

	teamID := "team-id-123"

	tests := []struct {
		name      string
		req       dto.AddMemberRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful add",
			req: dto.AddMemberRequest{
				StaffID: "staff-id-456",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockMemberRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "rejoin after leaving opens a new period",
			req: dto.AddMemberRequest{
				StaffID:  "staff-id-456",
				JoinedAt: "2026-03-01",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				// The closed period does not block a new one.
				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockMemberRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "team not found",
			req: dto.AddMemberRequest{
				StaffID: "staff-id-456",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "staff does not exist",
			req: dto.AddMemberRequest{
				StaffID: "missing-staff",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "already an active member",
			req: dto.AddMemberRequest{
				StaffID: "staff-id-456",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "invalid joined_at",
			req: dto.AddMemberRequest{
				StaffID:  "staff-id-456",
				JoinedAt: "01-03-2026",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "insert error",
			req: dto.AddMemberRequest{
				StaffID: "staff-id-456",
			},
			setupMock: func() {
				mockTeamRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockStaffRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockMemberRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			err := svc.AddMember(ctx, teamID, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTeamService_RemoveMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTeamRepo := teamMocks.NewMockTeam(ctrl)
	mockMemberRepo := teamMocks.NewMockMember(ctrl)
	mockStaffRepo := staffMocks.NewMockStaff(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockTeamRepo, mockMemberRepo, mockStaffRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful remove closes the period",
			setupMock: func() {
				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "no active membership",
			setupMock: func() {
				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "update error",
			setupMock: func() {
				mockMemberRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockMemberRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")
			err := svc.RemoveMember(ctx, "team-id-123", "staff-id-456")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
