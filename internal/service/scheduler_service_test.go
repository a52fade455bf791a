package service

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("03:15")
	require.NoError(t, err)
	assert.Equal(t, "0 15 3 * * *", spec)

	for _, bad := range []string{"", "3", "24:00", "12:60", "ab:10", "1:2:3"} {
		_, err := buildDailySpec(bad)
		assert.Error(t, err, bad)
	}
}

func TestScheduleIntervalRuns(t *testing.T) {
	s := NewSchedulerService(time.UTC, zap.NewNop())

	_, err := s.ScheduleInterval(0, func() {})
	assert.Error(t, err)

	ran := make(chan struct{}, 1)
	_, err = s.ScheduleInterval(time.Second, func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduleDailyRejectsBadTime(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	_, err := s.ScheduleDaily("25:00", func() {})
	assert.Error(t, err)

	_, err = s.ScheduleDaily("06:30", func() {})
	assert.NoError(t, err)
}

func TestScheduleIntervalTruncatesToSeconds(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)

	cases := []struct {
		interval time.Duration
		want     time.Duration
	}{
		{300 * time.Millisecond, time.Second},
		{1500 * time.Millisecond, time.Second},
		{90*time.Second + 500*time.Millisecond, 90 * time.Second},
	}
	for _, c := range cases {
		id, err := s.ScheduleInterval(c.interval, func() {})
		require.NoError(t, err)
		assert.Equal(t, cron.ConstantDelaySchedule{Delay: c.want}, s.cron.Entry(id).Schedule, c.interval.String())
	}
}
