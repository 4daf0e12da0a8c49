package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"weekgrid/config"
	"weekgrid/infras/otel/mocks"
	bookingMocks "weekgrid/internal/domains/booking/mocks"
	"weekgrid/internal/domains/booking/model"
	"weekgrid/internal/domains/booking/model/dto"
	"weekgrid/internal/domains/booking/policy"
	"weekgrid/internal/domains/booking/service"
	cacheMocks "weekgrid/shared/cache/mocks"
	"weekgrid/shared/failure"
)

func testPolicy() policy.Policy {
	return policy.Policy{
		OnePerWeek:    true,
		StartHourMin:  8,
		StartHourMax:  16,
		DayEndHour:    20,
		DurationHours: 4,
	}
}

func TestBookingService_ListWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockStore, testPolicy(), cfg, mockCache, mockOtel)

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		weekKey   string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name:      "invalid week key",
			weekKey:   "not-a-week",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:    "cache hit",
			weekKey: "2025-W46",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:    "cache miss, successful list sorted for the grid",
			weekKey: "2025-W46",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				bookings := []model.Booking{
					{ID: "b", WeekKey: "2025-W46", Title: "Sam", DayDate: wednesday, StartHour: 12, DurationHours: 4},
					{ID: "a", WeekKey: "2025-W46", Title: "Alex", DayDate: monday, StartHour: 8, DurationHours: 4},
				}

				mockStore.EXPECT().
					ListForWeek(gomock.Any(), "2025-W46").
					Return(bookings, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantLen: 2,
		},
		{
			name:    "store error",
			weekKey: "2025-W46",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockStore.EXPECT().
					ListForWeek(gomock.Any(), "2025-W46").
					Return(nil, errors.New("backend down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.ListWeek(context.Background(), tt.weekKey)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.wantLen > 0 {
				require.Len(t, result, tt.wantLen)
				// Earlier day first, regardless of arrival order.
				assert.Equal(t, "a", result[0].ID)
				assert.Equal(t, "b", result[1].ID)
				assert.Equal(t, "12:00", result[0].End)
			}
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockStore, testPolicy(), cfg, mockCache, mockOtel)

	validReq := dto.CreateBookingRequest{
		WeekKey:       "2025-W46",
		Title:         "Alex",
		DayDate:       "2025-11-12",
		StartHour:     8,
		DurationHours: 4,
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockStore.EXPECT().
					Create(gomock.Any(), gomock.Any(), true).
					DoAndReturn(func(_ context.Context, b model.Booking, _ bool) (model.Booking, error) {
						b.ID = "assigned"

						return b, nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "wrong duration",
			req: dto.CreateBookingRequest{
				WeekKey:       "2025-W46",
				Title:         "Alex",
				DayDate:       "2025-11-12",
				StartHour:     8,
				DurationHours: 2,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "start hour out of range",
			req: dto.CreateBookingRequest{
				WeekKey:       "2025-W46",
				Title:         "Alex",
				DayDate:       "2025-11-12",
				StartHour:     18,
				DurationHours: 4,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "day date outside week",
			req: dto.CreateBookingRequest{
				WeekKey:       "2025-W46",
				Title:         "Alex",
				DayDate:       "2025-11-03",
				StartHour:     8,
				DurationHours: 4,
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "one-per-week conflict from store",
			req:  validReq,
			setupMock: func() {
				mockStore.EXPECT().
					Create(gomock.Any(), gomock.Any(), true).
					Return(model.Booking{}, failure.Conflict("Alex already has a booking in week 2025-W46"))
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "assigned", result.ID)
			assert.Equal(t, "2025-W46", result.WeekKey)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockStore, testPolicy(), cfg, mockCache, mockOtel)

	mockStore.EXPECT().
		Delete(gomock.Any(), "abc", "2025-W46").
		Return(nil)

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	assert.NoError(t, svc.Delete(context.Background(), "abc", "2025-W46"))
}

func TestBookingService_ExportWeekCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := bookingMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockStore, testPolicy(), cfg, mockCache, mockOtel)

	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	mockStore.EXPECT().
		ListForWeek(gomock.Any(), "2025-W46").
		Return([]model.Booking{
			{ID: "b", WeekKey: "2025-W46", Title: "Sam", DayDate: monday, StartHour: 8, DurationHours: 4},
			{ID: "a", WeekKey: "2025-W46", Title: "Alex", DayDate: wednesday, StartHour: 12, DurationHours: 4},
		}, nil)

	payload, err := svc.ExportWeekCSV(context.Background(), "2025-W46")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(payload), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "Person,Day,Date,Start,End", lines[0])
	assert.Equal(t, `""`, lines[1])
	// Rows are sorted by person name, not by insertion or day order.
	assert.Equal(t, "Alex,Wednesday,2025-11-12,12:00,16:00", lines[2])
	assert.Equal(t, "Sam,Monday,2025-11-10,08:00,12:00", lines[3])
}

func TestBookingService_ExportWeekCSV_InvalidKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(
		bookingMocks.NewMockStore(ctrl),
		testPolicy(),
		&config.Config{},
		cacheMocks.NewMockRedisCache(ctrl),
		mocks.NewOtel(),
	)

	_, err := svc.ExportWeekCSV(context.Background(), "W46")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}
