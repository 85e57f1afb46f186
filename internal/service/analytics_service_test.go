package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialposts/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	from, to, err := DayBounds("2024-04-01", "2024-04-11", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 4, 11, 23, 59, 59, 999999999, time.UTC), to)
}

func TestDayBounds_Errors(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want error
	}{
		{name: "missing from", from: "", to: "2024-04-11", want: ErrDateRangeRequired},
		{name: "missing to", from: "2024-04-01", to: "", want: ErrDateRangeRequired},
		{name: "missing both", want: ErrDateRangeRequired},
		{name: "trailing hyphen", from: "2024-04-01-", to: "2024-04-11", want: ErrDateRangeFormat},
		{name: "wrong order", from: "01-04-2024", to: "2024-04-11", want: ErrDateRangeFormat},
		{name: "impossible day", from: "2024-04-01", to: "2024-02-30", want: ErrDateRangeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DayBounds(tt.from, tt.to, time.UTC)
			assert.ErrorIs(t, err, tt.want)
			assertValidationError(t, err)
		})
	}
}

func TestAnalyticsService_LikeCountsByDay(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	var gotFrom, gotTo time.Time
	var gotLoc *time.Location
	likes := noopLikeRepo()
	likes.countByDayFn = func(_ context.Context, from, to time.Time, loc *time.Location) (map[string]int64, error) {
		gotFrom, gotTo, gotLoc = from, to, loc
		return map[string]int64{"2024-04-01": 2, "2024-04-03": 1}, nil
	}
	svc := NewAnalyticsService(likes, nil)

	counts, err := svc.LikeCountsByDay(context.Background(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"2024-04-01": 2, "2024-04-03": 1}, counts)
	assert.Equal(t, day1, gotFrom)
	assert.Equal(t, day1.AddDate(0, 0, 3).Add(-time.Nanosecond), gotTo)
	assert.Equal(t, time.UTC, gotLoc)
}

func TestAnalyticsService_TimeZoneBounds(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	likes := noopLikeRepo()
	likes.countByDayFn = func(_ context.Context, from, _ time.Time, gotLoc *time.Location) (map[string]int64, error) {
		// local midnight is 21:00 UTC the day before
		assert.Equal(t, time.Date(2024, 3, 31, 21, 0, 0, 0, time.UTC), from.UTC())
		assert.Equal(t, loc, gotLoc)
		return map[string]int64{"2024-04-01": 1}, nil
	}
	svc := NewAnalyticsService(likes, loc)

	counts, err := svc.LikeCountsByDay(context.Background(), "2024-04-01", "2024-04-01")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"2024-04-01": 1}, counts)
}

func TestAnalyticsService_NilCountsBecomeEmpty(t *testing.T) {
	t.Parallel()

	likes := noopLikeRepo()
	likes.countByDayFn = func(_ context.Context, _, _ time.Time, _ *time.Location) (map[string]int64, error) {
		return nil, nil
	}
	svc := NewAnalyticsService(likes, time.UTC)

	counts, err := svc.LikeCountsByDay(context.Background(), "2024-04-01", "2024-04-02")
	require.NoError(t, err)
	assert.NotNil(t, counts)
	assert.Empty(t, counts)
}

func TestAnalyticsService_ReversedRangeIsEmpty(t *testing.T) {
	t.Parallel()

	likes := noopLikeRepo()
	likes.countByDayFn = func(_ context.Context, _, _ time.Time, _ *time.Location) (map[string]int64, error) {
		t.Fatal("query must not run for an empty window")
		return nil, nil
	}
	svc := NewAnalyticsService(likes, time.UTC)

	counts, err := svc.LikeCountsByDay(context.Background(), "2024-04-11", "2024-04-01")
	require.NoError(t, err)
	assert.Empty(t, counts)
	assert.NotNil(t, counts)
}

func TestAnalyticsService_Errors(t *testing.T) {
	t.Parallel()

	likes := noopLikeRepo()
	likes.countByDayFn = func(_ context.Context, _, _ time.Time, _ *time.Location) (map[string]int64, error) {
		return nil, models.NewInternalError(errors.New("db down"))
	}
	svc := NewAnalyticsService(likes, time.UTC)
	ctx := context.Background()

	_, err := svc.LikeCountsByDay(ctx, "", "2024-04-01")
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = svc.LikeCountsByDay(ctx, "2024-04-01", "2024-04-0x")
	assert.ErrorIs(t, err, ErrDateRangeFormat)

	_, err = svc.LikeCountsByDay(ctx, "2024-04-01", "2024-04-02")
	assertAppErrorCode(t, err, models.CodeInternal)
}
