package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pagespark/config"
	"pagespark/infras/otel/mocks"
	apptMocks "pagespark/internal/domains/appointment/mocks"
	apptModel "pagespark/internal/domains/appointment/model"
	"pagespark/internal/domains/availability/model/dto"
	"pagespark/internal/domains/availability/service"
	whMocks "pagespark/internal/domains/workhour/mocks"
	whModel "pagespark/internal/domains/workhour/model"
	"pagespark/shared/constant"
	"pagespark/shared/failure"
	"pagespark/shared/timezone"
)

type serviceMocks struct {
	workHour    *whMocks.MockWorkHour
	appointment *apptMocks.MockAppointment
}

func newService(t *testing.T) (service.Availability, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		workHour:    whMocks.NewMockWorkHour(ctrl),
		appointment: apptMocks.NewMockAppointment(ctrl),
	}

	svc := service.New(m.workHour, m.appointment, &config.Config{}, mocks.NewOtel())

	return svc, m
}

// futureDay returns midnight local time a week out, so tests always evaluate
// an upcoming date.
func futureDay() time.Time {
	future := timezone.Now().AddDate(0, 0, 7)

	return time.Date(future.Year(), future.Month(), future.Day(), 0, 0, 0, 0, future.Location())
}

func dayRules(day time.Time) []whModel.WorkHour {
	return []whModel.WorkHour{
		{
			ID:         "wh-1",
			BusinessID: "business-1",
			DayOfWeek:  int(day.Weekday()),
			StartTime:  "09:00",
			EndTime:    "17:00",
			IsEnabled:  true,
		},
	}
}

func TestAvailabilityService_GetDay(t *testing.T) {
	day := futureDay()
	travel := 15

	baseReq := dto.AvailabilityRequest{
		BusinessID:      "business-1",
		Date:            day.Format(constant.DateOnlyFormat),
		DurationMinutes: 60,
		TravelMinutes:   &travel,
	}

	t.Run("open day with one appointment", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dayRules(day), nil)

		serviceStart := day.Add(10*time.Hour + 15*time.Minute)
		existing := apptModel.Appointment{
			ID:               "appt-1",
			BusinessID:       "business-1",
			CustomerName:     "Dana",
			StartTime:        day.Add(10 * time.Hour),
			ServiceStartTime: &serviceStart,
			EndTime:          day.Add(11 * time.Hour),
			TravelMinutes:    &travel,
			Status:           apptModel.StatusConfirmed,
		}
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]apptModel.Appointment{existing}, nil)

		res, err := svc.GetDay(context.Background(), baseReq)

		require.NoError(t, err)
		assert.True(t, res.Open)
		require.NotNil(t, res.Window)
		require.Len(t, res.Slots, 32)

		bySlot := map[string]dto.SlotResponse{}
		for _, slot := range res.Slots {
			start, parseErr := time.Parse(time.RFC3339, slot.StartTime)
			require.NoError(t, parseErr)

			bySlot[start.Format("15:04")] = slot
		}

		tenAM := bySlot["10:00"]
		assert.False(t, tenAM.Available)
		assert.Equal(t, "travel", tenAM.Phase)
		assert.Equal(t, "appt-1", tenAM.AppointmentID)
		assert.Equal(t, "Dana", tenAM.CustomerName)

		assert.Equal(t, "service", bySlot["10:15"].Phase)
		assert.False(t, bySlot["10:45"].Available)

		assert.True(t, bySlot["09:00"].Available)
		assert.True(t, bySlot["11:00"].Available)
	})

	t.Run("closed day", func(t *testing.T) {
		svc, m := newService(t)

		otherDay := dayRules(day)
		otherDay[0].DayOfWeek = (otherDay[0].DayOfWeek + 1) % 7

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(otherDay, nil)
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]apptModel.Appointment{}, nil)

		res, err := svc.GetDay(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, res.Open)
		assert.Nil(t, res.Window)
		assert.Empty(t, res.Slots)
	})

	t.Run("malformed rule keeps the day closed", func(t *testing.T) {
		svc, m := newService(t)

		broken := dayRules(day)
		broken[0].StartTime = "9am"

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(broken, nil)
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]apptModel.Appointment{}, nil)

		res, err := svc.GetDay(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, res.Open)
		assert.Nil(t, res.Window)
		assert.Empty(t, res.Slots)
	})

	t.Run("missing travel minutes yields no slots", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dayRules(day), nil)
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]apptModel.Appointment{}, nil)

		req := baseReq
		req.TravelMinutes = nil

		res, err := svc.GetDay(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, res.Open)
		assert.Empty(t, res.Slots)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _ := newService(t)

		req := baseReq
		req.Date = "next tuesday"

		_, err := svc.GetDay(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("work hour repository error", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.GetDay(context.Background(), baseReq)

		assert.Error(t, err)
	})
}

func TestAvailabilityService_Check(t *testing.T) {
	day := futureDay()

	baseReq := dto.CheckAvailabilityRequest{
		BusinessID:      "business-1",
		StartTime:       day.Add(14 * time.Hour).Format(time.RFC3339),
		DurationMinutes: 60,
	}

	expectCalendar := func(m serviceMocks, appointments []apptModel.Appointment) {
		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dayRules(day), nil)
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(appointments, nil)
	}

	t.Run("available interval", func(t *testing.T) {
		svc, m := newService(t)
		expectCalendar(m, []apptModel.Appointment{})

		res, err := svc.Check(context.Background(), baseReq)

		require.NoError(t, err)
		assert.True(t, res.Available)
		assert.Empty(t, res.Reason)
	})

	t.Run("overlapping appointment", func(t *testing.T) {
		svc, m := newService(t)

		existing := apptModel.Appointment{
			ID:         "appt-1",
			BusinessID: "business-1",
			StartTime:  day.Add(14*time.Hour + 30*time.Minute),
			EndTime:    day.Add(15*time.Hour + 30*time.Minute),
			Status:     apptModel.StatusConfirmed,
		}
		expectCalendar(m, []apptModel.Appointment{existing})

		res, err := svc.Check(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Contains(t, res.Reason, "overlaps")
	})

	t.Run("outside work hours", func(t *testing.T) {
		svc, m := newService(t)
		expectCalendar(m, []apptModel.Appointment{})

		req := baseReq
		req.StartTime = day.Add(18 * time.Hour).Format(time.RFC3339)

		res, err := svc.Check(context.Background(), req)

		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Contains(t, res.Reason, "work hours")
	})

	t.Run("closed day", func(t *testing.T) {
		svc, m := newService(t)

		otherDay := dayRules(day)
		otherDay[0].IsEnabled = false

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(otherDay, nil)
		m.appointment.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]apptModel.Appointment{}, nil)

		res, err := svc.Check(context.Background(), baseReq)

		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Contains(t, res.Reason, "closed")
	})

	t.Run("invalid start time", func(t *testing.T) {
		svc, _ := newService(t)

		req := baseReq
		req.StartTime = "ten in the morning"

		_, err := svc.Check(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
