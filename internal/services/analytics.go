package services

import (
	"time"

	"github.com/velora-live/velora/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Analytics intervals.
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalAllTime = "all-time"
)

// PointBucket is one aggregation bucket of fame/rich point sums. Year and
// Bucket are zero for the all-time interval.
type PointBucket struct {
	Year            int   `json:"year,omitempty"`
	Bucket          int   `json:"interval,omitempty"`
	TotalFamePoints int64 `json:"totalFamePoints"`
	TotalRichPoints int64 `json:"totalRichPoints"`
}

type AnalyticsService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAnalyticsService(conn *gorm.DB, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{db: conn, logger: logger}
}

// groupExprs maps an interval to the year and bucket grouping expressions.
// Empty expressions mean a single all-time bucket; unrecognized intervals
// fall back to all-time.
func groupExprs(interval string) (yearExpr, bucketExpr string) {
	switch interval {
	case IntervalDaily:
		return "EXTRACT(YEAR FROM timestamp)::int", "EXTRACT(DOY FROM timestamp)::int"
	case IntervalWeekly:
		return "EXTRACT(ISOYEAR FROM timestamp)::int", "EXTRACT(WEEK FROM timestamp)::int"
	case IntervalMonthly:
		return "EXTRACT(YEAR FROM timestamp)::int", "EXTRACT(MONTH FROM timestamp)::int"
	default:
		return "", ""
	}
}

// Summary sums a user's fame and rich points over the selected bucketing,
// optionally restricted to one room.
func (s *AnalyticsService) Summary(userID uint, interval, roomID string) ([]PointBucket, error) {
	q := s.db.Model(&models.PointEvent{}).Where("user_id = ?", userID)
	if roomID != "" {
		q = q.Where("room_id = ?", roomID)
	}

	yearExpr, bucketExpr := groupExprs(interval)

	if bucketExpr == "" {
		var bucket PointBucket
		err := q.Select("COALESCE(SUM(fame_points), 0) AS total_fame_points, COALESCE(SUM(rich_points), 0) AS total_rich_points").
			Scan(&bucket).Error
		if err != nil {
			return nil, err
		}
		return []PointBucket{bucket}, nil
	}

	var buckets []PointBucket
	err := q.Select(yearExpr + " AS year, " + bucketExpr + " AS bucket, " +
		"SUM(fame_points) AS total_fame_points, SUM(rich_points) AS total_rich_points").
		Group(yearExpr + ", " + bucketExpr).
		Order("year, bucket").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		buckets = []PointBucket{{}}
	}
	return buckets, nil
}

// RecordEvent appends one point event to the stream.
func (s *AnalyticsService) RecordEvent(userID uint, famePoints, richPoints int64, roomID string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	event := models.PointEvent{
		UserID:     userID,
		FamePoints: famePoints,
		RichPoints: richPoints,
		RoomID:     roomID,
		Timestamp:  at,
	}
	return s.db.Create(&event).Error
}
