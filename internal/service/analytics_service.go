package service

import (
	"context"
	"strings"
	"time"

	"socialposts/internal/models"
	"socialposts/internal/observability"
	"socialposts/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DateLayout is the YYYY-MM-DD format of analytics parameters and result keys.
const DateLayout = "2006-01-02"

var (
	// ErrDateRangeRequired is returned when either bound is missing.
	ErrDateRangeRequired = models.NewValidationError("date_from and date_to are required parameters. Ex: /?date_from=2024-04-01&date_to=2024-04-11")
	// ErrDateRangeFormat is returned when a bound is not a YYYY-MM-DD date.
	ErrDateRangeFormat = models.NewValidationError("Incorrect format date. Ex: /?date_from=2024-04-01&date_to=2024-04-11")
)

type AnalyticsService struct {
	likeRepo repository.LikeRepository
	loc      *time.Location
}

// NewAnalyticsService buckets days in loc; nil means UTC.
func NewAnalyticsService(likeRepo repository.LikeRepository, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{likeRepo: likeRepo, loc: loc}
}

// DayBounds returns the first and last instant of the given days in loc.
func DayBounds(dateFrom, dateTo string, loc *time.Location) (time.Time, time.Time, error) {
	dateFrom, dateTo = strings.TrimSpace(dateFrom), strings.TrimSpace(dateTo)
	if dateFrom == "" || dateTo == "" {
		return time.Time{}, time.Time{}, ErrDateRangeRequired
	}

	from, err := time.ParseInLocation(DateLayout, dateFrom, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrDateRangeFormat
	}
	toDay, err := time.ParseInLocation(DateLayout, dateTo, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrDateRangeFormat
	}

	to := toDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return from, to, nil
}

// LikeCountsByDay counts likes per calendar day between dateFrom and dateTo,
// both inclusive. Days without likes are omitted.
func (s *AnalyticsService) LikeCountsByDay(ctx context.Context, dateFrom, dateTo string) (counts map[string]int64, err error) {
	span, ctx := observability.NewSpan(ctx, "AnalyticsService.LikeCountsByDay",
		attribute.String("analytics.date_from", dateFrom),
		attribute.String("analytics.date_to", dateTo),
	)
	defer func() {
		span.SetError(err)
		span.End()
	}()

	from, to, err := DayBounds(dateFrom, dateTo, s.loc)
	if err != nil {
		observability.AnalyticsQueries.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if from.After(to) {
		observability.AnalyticsQueries.WithLabelValues("ok").Inc()
		return map[string]int64{}, nil
	}

	counts, err = s.likeRepo.CountByDay(ctx, from, to, s.loc)
	if err != nil {
		observability.AnalyticsQueries.WithLabelValues("error").Inc()
		return nil, err
	}
	if counts == nil {
		counts = make(map[string]int64)
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	observability.AnalyticsQueries.WithLabelValues("ok").Inc()
	span.AddAttributes(attribute.Int64("analytics.likes", total), attribute.Int("analytics.days", len(counts)))
	return counts, nil
}
