package repository

import (
	"context"
	"errors"
	"time"

	"socialposts/internal/database"
	"socialposts/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	Find(ctx context.Context, userID, postID uint) (*models.Like, error)
	Save(ctx context.Context, like *models.Like) (bool, error)
	Delete(ctx context.Context, userID, postID uint) (int64, error)
	QueryByRange(ctx context.Context, from, to time.Time) ([]models.Like, error)
	CountByDay(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]int64, error)
}

const dayLayout = "2006-01-02"

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Find returns nil, nil when the user has not liked the post.
func (r *likeRepository) Find(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Take(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

// Save inserts the like. It reports false without error when the pair
// already exists, so concurrent toggles cannot produce duplicates.
func (r *likeRepository) Save(ctx context.Context, like *models.Like) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes every like of the pair and returns how many went away.
func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	return result.RowsAffected, nil
}

// QueryByRange returns likes created within [from, to], both ends inclusive,
// oldest first.
func (r *likeRepository) QueryByRange(ctx context.Context, from, to time.Time) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from.UTC(), to.UTC()).
		Order("created_at ASC").
		Order("id ASC").
		Find(&likes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

// CountByDay counts likes created within [from, to] per calendar day in loc,
// keyed YYYY-MM-DD. Only created_at is read and rows are streamed, so memory
// grows with the number of days rather than the number of likes.
func (r *likeRepository) CountByDay(ctx context.Context, from, to time.Time, loc *time.Location) (map[string]int64, error) {
	if loc == nil {
		loc = time.UTC
	}
	rows, err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("created_at").
		Where("created_at >= ? AND created_at <= ?", from.UTC(), to.UTC()).
		Rows()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var row struct {
			CreatedAt time.Time
		}
		if err := r.db.ScanRows(rows, &row); err != nil {
			return nil, models.NewInternalError(err)
		}
		counts[row.CreatedAt.In(loc).Format(dayLayout)]++
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}
