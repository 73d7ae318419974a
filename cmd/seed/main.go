package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bloggramm/bloggramm/config"
	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/internal/infrastructure/redisdoc"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

// Seeds a demo user into the credential store plus a handful of categories
// and posts into the content store for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	userName := "demoUser"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := redisdoc.NewUserRepository(rdb)
	err = users.Create(ctx, &entity.User{
		UserName:     userName,
		PasswordHash: hash,
		Email:        "demo@bloggramm.dev",
	})
	switch {
	case err == nil:
		fmt.Printf("seeded user: name=%s password=%s\n", userName, password)
	case errors.Is(err, repository.ErrDuplicateKey):
		fmt.Printf("user %s already exists, skipping\n", userName)
	default:
		log.Fatalf("failed to seed user: %v", err)
	}

	categories := []string{"Engineering", "Travel", "Cooking"}
	catIDs := make([]int, 0, len(categories))
	for _, label := range categories {
		var id int
		if err := db.QueryRow(`
			INSERT INTO categories (category) VALUES ($1) RETURNING id
		`, label).Scan(&id); err != nil {
			log.Fatalf("failed to seed category %q: %v", label, err)
		}
		catIDs = append(catIDs, id)
	}
	fmt.Printf("seeded %d categories\n", len(catIDs))

	posts := []struct {
		title     string
		body      string
		published bool
		category  int
	}{
		{"Hello, Bloggramm", "<p>The first post on a fresh install.</p>", true, catIDs[0]},
		{"A week in the mountains", "<p>Trip notes and photos.</p>", true, catIDs[1]},
		{"Draft: sourdough basics", "<p>Still kneading this one.</p>", false, catIDs[2]},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO posts (title, body, post_date, feature_image, published, category)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.title, p.body, time.Now().UTC(), "", p.published, p.category); err != nil {
			log.Fatalf("failed to seed post %q: %v", p.title, err)
		}
	}
	fmt.Printf("seeded %d posts\n", len(posts))
}
