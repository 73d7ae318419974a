package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, body, post_date, feature_image, published, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, p.Title, p.Body, p.PostDate, p.FeatureImage, p.Published, p.Category)

	return row.Scan(&p.ID)
}

func (r *PostRepository) GetByID(ctx context.Context, id int) (*entity.Post, error) {
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, title, body, post_date, feature_image, published, category
		FROM posts
		WHERE id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Title, &p.Body, &p.PostDate, &p.FeatureImage,
		&p.Published, &p.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List translates the filter into WHERE predicates. An empty filter returns
// every post.
func (r *PostRepository) List(ctx context.Context, f repository.PostFilter) ([]entity.Post, error) {
	var (
		conds []string
		args  []any
	)
	if f.Category != nil {
		args = append(args, *f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinDate != nil {
		args = append(args, *f.MinDate)
		conds = append(conds, fmt.Sprintf("post_date >= $%d", len(args)))
	}
	if f.PublishedOnly {
		conds = append(conds, "published = TRUE")
	}

	q := `SELECT id, title, body, post_date, feature_image, published, category FROM posts`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []entity.Post
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.PostDate, &p.FeatureImage,
			&p.Published, &p.Category); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
