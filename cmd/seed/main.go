// Command main runs the database seeder.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"socialposts/internal/config"
	"socialposts/internal/database"
	"socialposts/internal/middleware"
	"socialposts/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	maxLikes := flag.Int("likes", 20, "Maximum likes per post")
	days := flag.Int("days", 30, "Spread posts and likes over this many past days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", true, "Hash passwords with the minimum bcrypt cost")
	randSeed := flag.Int64("seed", 0, "Random seed for a reproducible run (0 = time-based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	middleware.InitLogger(cfg.Env, cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	result, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:        *numUsers,
		NumPosts:        *numPosts,
		MaxLikesPerPost: *maxLikes,
		MaxDays:         *days,
		ShouldClean:     *shouldClean,
		FastHash:        *fast,
		RandSeed:        *randSeed,
	})
	if err != nil {
		middleware.Logger.Error("Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	middleware.Logger.Info("Seeding complete",
		slog.Int("users", result.Users),
		slog.Int("posts", result.Posts),
		slog.Int("likes", result.Likes),
		slog.String("password", seed.DefaultPassword),
	)
}
