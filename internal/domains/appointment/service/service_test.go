package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pagespark/config"
	kafkaMocks "pagespark/infras/kafka/mocks"
	"pagespark/infras/otel/mocks"
	apptMocks "pagespark/internal/domains/appointment/mocks"
	"pagespark/internal/domains/appointment/model"
	"pagespark/internal/domains/appointment/model/dto"
	"pagespark/internal/domains/appointment/service"
	whMocks "pagespark/internal/domains/workhour/mocks"
	whModel "pagespark/internal/domains/workhour/model"
	cacheMocks "pagespark/shared/cache/mocks"
	"pagespark/shared/constant"
	gDto "pagespark/shared/dto"
	"pagespark/shared/failure"
	"pagespark/shared/timezone"
)

type serviceMocks struct {
	repo     *apptMocks.MockAppointment
	workHour *whMocks.MockWorkHour
	cache    *cacheMocks.MockRedisCache
	kafka    *kafkaMocks.MockClient
}

func newService(t *testing.T) (service.Appointment, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		repo:     apptMocks.NewMockAppointment(ctrl),
		workHour: whMocks.NewMockWorkHour(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.workHour, cfg, m.cache, m.kafka, mocks.NewOtel())

	return svc, m
}

// futureStart returns 10:00 local time a week from now, so calendar checks
// run against a deterministic open day.
func futureStart() time.Time {
	future := timezone.Now().AddDate(0, 0, 7)

	return time.Date(future.Year(), future.Month(), future.Day(), 10, 0, 0, 0, future.Location())
}

func openDayRules(start time.Time) []whModel.WorkHour {
	return []whModel.WorkHour{
		{
			ID:         "wh-1",
			BusinessID: "business-1",
			DayOfWeek:  int(start.Weekday()),
			StartTime:  "09:00",
			EndTime:    "17:00",
			IsEnabled:  true,
		},
	}
}

func TestAppointmentService_Create(t *testing.T) {
	start := futureStart()

	baseReq := dto.CreateAppointmentRequest{
		BusinessID:      "business-1",
		CustomerName:    "Dana",
		Address:         "12 Elm St",
		StartTime:       start.Format(time.RFC3339),
		DurationMinutes: 60,
	}

	t.Run("successful creation", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{}, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		res, err := svc.Create(ctx, baseReq)

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, "Dana", res.CustomerName)
	})

	t.Run("travel minutes extend the interval", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{}, nil)

		var inserted model.Appointment

		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, appointment model.Appointment) error {
				inserted = appointment

				return nil
			})

		req := baseReq
		travel := 15
		req.TravelMinutes = &travel

		_, err := svc.Create(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, inserted.ServiceStartTime)
		assert.True(t, inserted.ServiceStartTime.Equal(start.Add(15*time.Minute)))
		assert.True(t, inserted.EndTime.Equal(start.Add(75*time.Minute)))
	})

	t.Run("start in the past", func(t *testing.T) {
		svc, _ := newService(t)

		req := baseReq
		req.StartTime = timezone.Now().AddDate(0, 0, -1).Format(time.RFC3339)

		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("invalid start time format", func(t *testing.T) {
		svc, _ := newService(t)

		req := baseReq
		req.StartTime = "tomorrow at ten"

		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("closed day", func(t *testing.T) {
		svc, m := newService(t)

		otherDay := (int(start.Weekday()) + 1) % 7
		rules := openDayRules(start)
		rules[0].DayOfWeek = otherDay

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rules, nil)

		_, err := svc.Create(context.Background(), baseReq)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("early start opens a day without a rule", func(t *testing.T) {
		svc, m := newService(t)

		otherDay := (int(start.Weekday()) + 1) % 7
		rules := openDayRules(start)
		rules[0].DayOfWeek = otherDay

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rules, nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{}, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		req := baseReq
		req.EarlyStart = start.Add(-3 * time.Hour).Format(time.RFC3339)

		res, err := svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("invalid early start format", func(t *testing.T) {
		svc, _ := newService(t)

		req := baseReq
		req.EarlyStart = "sunrise"

		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("outside work hours", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)

		late := time.Date(start.Year(), start.Month(), start.Day(), 16, 30, 0, 0, start.Location())
		req := baseReq
		req.StartTime = late.Format(time.RFC3339)

		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("overlapping appointment", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)

		existing := model.Appointment{
			ID:           "existing",
			BusinessID:   "business-1",
			CustomerName: "Sam",
			StartTime:    start.Add(30 * time.Minute),
			EndTime:      start.Add(90 * time.Minute),
			Status:       model.StatusConfirmed,
		}
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{existing}, nil)

		_, err := svc.Create(context.Background(), baseReq)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("cancelled appointment does not block", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)

		cancelled := model.Appointment{
			ID:         "cancelled",
			BusinessID: "business-1",
			StartTime:  start.Add(30 * time.Minute),
			EndTime:    start.Add(90 * time.Minute),
			Status:     model.StatusCancelled,
		}
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{cancelled}, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := svc.Create(context.Background(), baseReq)

		assert.NoError(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		svc, m := newService(t)

		m.workHour.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openDayRules(start), nil)
		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Appointment{}, nil)
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := svc.Create(context.Background(), baseReq)

		assert.Error(t, err)
	})
}

func TestAppointmentService_Get(t *testing.T) {
	t.Run("successful get", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		appointment := model.Appointment{
			ID:           "appt-1",
			BusinessID:   "business-1",
			CustomerName: "Dana",
			StartTime:    futureStart(),
			EndTime:      futureStart().Add(time.Hour),
			Status:       model.StatusPending,
		}
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(appointment, nil)

		res, err := svc.Get(context.Background(), "appt-1")

		require.NoError(t, err)
		assert.Equal(t, "appt-1", res.ID)
		assert.Equal(t, "Dana", res.CustomerName)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Appointment{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestAppointmentService_GetAll(t *testing.T) {
	svc, m := newService(t)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	start := futureStart()
	models := make([]model.Appointment, 3)

	for i := range models {
		models[i] = model.Appointment{
			ID:         fmt.Sprintf("appt-%d", i),
			BusinessID: "business-1",
			StartTime:  start.Add(time.Duration(i) * 2 * time.Hour),
			EndTime:    start.Add(time.Duration(i)*2*time.Hour + time.Hour),
			Status:     model.StatusConfirmed,
		}
	}

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(3, nil)
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Appointments, 3)
}

func TestAppointmentService_Cancel(t *testing.T) {
	t.Run("successful cancel", func(t *testing.T) {
		svc, m := newService(t)

		appointment := model.Appointment{
			ID:     "appt-1",
			Status: model.StatusConfirmed,
		}
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(appointment, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				assert.Equal(t, "test-user-id", fields[constant.FieldModifiedBy])
				assert.Contains(t, fields, constant.FieldModifiedAt)

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")

		assert.NoError(t, svc.Cancel(ctx, "appt-1"))
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Appointment{}, nil)

		err := svc.Cancel(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("already cancelled", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Appointment{ID: "appt-1", Status: model.StatusCancelled}, nil)

		err := svc.Cancel(context.Background(), "appt-1")

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}
