package seed

import (
	"context"
	"fmt"
	"log/slog"

	"socialposts/internal/middleware"
	"socialposts/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	NumPosts        int
	MaxLikesPerPost int
	// MaxDays bounds how far back posts and likes are spread.
	MaxDays     int
	ShouldClean bool
	// FastHash uses bcrypt.MinCost so large seeds finish quickly.
	FastHash  bool
	BatchSize int
	// RandSeed makes a run reproducible; zero picks a time-based seed.
	RandSeed int64
}

func (o Options) maxDays() int {
	if o.MaxDays <= 0 {
		return 30
	}
	return o.MaxDays
}

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return 500
	}
	return o.BatchSize
}

// Result summarizes what Seed inserted.
type Result struct {
	Users int
	Posts int
	Likes int
}

// Seed populates the database with users, posts and likes spread over the
// last MaxDays days.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	db = db.WithContext(ctx)
	middleware.Logger.InfoContext(ctx, "Starting database seeding",
		slog.Int("users", opts.NumUsers),
		slog.Int("posts", opts.NumPosts),
		slog.Int("max_likes_per_post", opts.MaxLikesPerPost),
		slog.Int("max_days", opts.maxDays()),
	)

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return nil, fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	cost := bcrypt.DefaultCost
	if opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	f := NewFactory(db, opts, string(hash))
	result := &Result{}

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	result.Users = len(users)
	middleware.Logger.InfoContext(ctx, "Users created", slog.Int("count", result.Users))

	if len(users) == 0 {
		return result, nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, f.BuildPost(users[f.rng.Intn(len(users))]))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	result.Posts = len(posts)
	middleware.Logger.InfoContext(ctx, "Posts created", slog.Int("count", result.Posts))

	var likes []*models.Like
	for _, p := range posts {
		likes = append(likes, f.BuildLikes(p, users)...)
	}
	if err := f.CreateLikesBatch(likes); err != nil {
		return nil, fmt.Errorf("failed to create likes: %w", err)
	}
	result.Likes = len(likes)
	middleware.Logger.InfoContext(ctx, "Likes created", slog.Int("count", result.Likes))

	return result, nil
}

// ClearAll removes every like, post and user.
func ClearAll(db *gorm.DB) error {
	middleware.Logger.Info("Clearing existing data")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE likes, posts, users RESTART IDENTITY CASCADE;`).Error
	}

	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&models.Like{}, &models.Post{}, &models.User{}} {
		if err := all.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
