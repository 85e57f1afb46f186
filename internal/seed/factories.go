// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"socialposts/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by Seed and tests.
type Factory struct {
	db           *gorm.DB
	opts         Options
	faker        *gofakeit.Faker
	rng          *rand.Rand
	now          time.Time
	passwordHash string
}

// NewFactory creates a Factory bound to db. passwordHash is stored on every
// generated user.
func NewFactory(db *gorm.DB, opts Options, passwordHash string) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{
		db:           db,
		opts:         opts,
		faker:        gofakeit.New(seed),
		//nolint:gosec // Weak random number generator is fine for seeding
		rng:          rand.New(rand.NewSource(seed)),
		now:          time.Now().UTC(),
		passwordHash: passwordHash,
	}
}

// BuildUser constructs an unsaved user with a unique email for index i.
func (f *Factory) BuildUser(i int) *models.User {
	name := strings.ToLower(f.faker.Username())
	return &models.User{
		Email:    fmt.Sprintf("%s.%d@example.com", name, i),
		Password: f.passwordHash,
	}
}

// BuildPost constructs an unsaved post for user, created at a random moment
// within the last MaxDays days.
func (f *Factory) BuildPost(user *models.User) *models.Post {
	return &models.Post{
		UserID:    user.ID,
		User:      *user,
		Text:      truncateRunes(f.faker.Sentence(f.rng.Intn(20)+3), models.MaxPostTextLength),
		CreatedAt: f.randomTimeSince(f.now.Add(-time.Duration(f.opts.maxDays()) * 24 * time.Hour)),
	}
}

// BuildLikes picks up to MaxLikesPerPost distinct users to like post, each at
// a random moment between the post's creation and now.
func (f *Factory) BuildLikes(post *models.Post, users []*models.User) []*models.Like {
	limit := f.opts.MaxLikesPerPost
	if limit > len(users) {
		limit = len(users)
	}
	if limit <= 0 {
		return nil
	}

	n := f.rng.Intn(limit + 1)
	likes := make([]*models.Like, 0, n)
	for _, idx := range f.rng.Perm(len(users))[:n] {
		likes = append(likes, &models.Like{
			UserID:    users[idx].ID,
			PostID:    post.ID,
			CreatedAt: f.randomTimeSince(post.CreatedAt),
		})
	}
	return likes
}

// CreateUsers persists count generated users.
func (f *Factory) CreateUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, f.BuildUser(i))
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := f.db.CreateInBatches(&users, f.opts.batchSize()).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePostsBatch persists multiple posts in as few DB calls as possible.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("User").CreateInBatches(&posts, f.opts.batchSize()).Error
}

// CreateLikesBatch persists likes built by BuildLikes.
func (f *Factory) CreateLikesBatch(likes []*models.Like) error {
	if len(likes) == 0 {
		return nil
	}
	return f.db.Omit("User").CreateInBatches(&likes, f.opts.batchSize()).Error
}

func (f *Factory) randomTimeSince(start time.Time) time.Time {
	span := f.now.Sub(start)
	if span <= 0 {
		return f.now
	}
	return start.Add(time.Duration(f.rng.Int63n(int64(span)))).UTC()
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
