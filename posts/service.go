package posts

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// PostService defines the operations of the posts feature. Handlers depend
// on this interface rather than the concrete implementation.
type PostService interface {
	List(ctx context.Context) ([]PostView, error)
	Create(ctx context.Context, userID int, message string) (*Post, error)
	Update(ctx context.Context, userID, postID int, message string) error
	Delete(ctx context.Context, userID, postID int) error
	Like(ctx context.Context, userID, postID int) error
}

type postServiceImpl struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostService creates a PostService backed by the given connection pool.
func NewPostService(db *pgxpool.Pool, log *logrus.Logger) PostService {
	return &postServiceImpl{db: db, log: log}
}

// List returns every post ordered by creation time descending. Alias and
// like count are resolved in the same query, so the cost stays at one round
// trip regardless of how many posts exist.
func (s *postServiceImpl) List(ctx context.Context) ([]PostView, error) {
	query := `
		SELECT p.id, p.message, p.created_at, u.alias, u.id, COUNT(l.id) AS likes_count
		FROM posts p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN likes l ON l.post_id = p.id
		GROUP BY p.id, p.message, p.created_at, u.alias, u.id
		ORDER BY p.created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	views := []PostView{}
	for rows.Next() {
		var v PostView
		if err := rows.Scan(&v.ID, &v.Message, &v.CreatedAt, &v.UserAlias, &v.UserID, &v.LikesCount); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read posts", err)
	}

	return views, nil
}

// Create persists a new post owned by userID, timestamped by the database.
func (s *postServiceImpl) Create(ctx context.Context, userID int, message string) (*Post, error) {
	if message == "" {
		return nil, apperror.NewBadRequestError("message is required", nil)
	}

	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	post := &Post{Message: message, UserID: userID}
	query := `INSERT INTO posts (message, user_id) VALUES ($1, $2) RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, message, userID).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": post.ID}).Info("post created")
	return post, nil
}

// Update replaces the message of an owned post. created_at is untouched.
func (s *postServiceImpl) Update(ctx context.Context, userID, postID int, message string) error {
	if strings.TrimSpace(message) == "" {
		return apperror.NewBadRequestError("message is required", nil)
	}

	ownerID, err := s.postOwner(ctx, postID)
	if err != nil {
		return err
	}
	if !auth.CanModify(userID, ownerID) {
		return apperror.NewForbiddenError("you do not have permission to edit this post", nil)
	}

	_, err = s.db.Exec(ctx, `UPDATE posts SET message = $1 WHERE id = $2`, message, postID)
	if err != nil {
		return apperror.NewDatabaseError("failed to update post", err)
	}
	return nil
}

// Delete removes an owned post. The likes referencing it are removed by the
// ON DELETE CASCADE on likes.post_id.
func (s *postServiceImpl) Delete(ctx context.Context, userID, postID int) error {
	ownerID, err := s.postOwner(ctx, postID)
	if err != nil {
		return err
	}
	if !auth.CanModify(userID, ownerID) {
		return apperror.NewForbiddenError("you do not have permission to delete this post", nil)
	}

	_, err = s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Info("post deleted")
	return nil
}

// Like inserts a like for (userID, postID). The friendly duplicate check
// runs first; under concurrent duplicates the unique constraint on
// (user_id, post_id) rejects the losing insert and that violation is mapped
// to the same 400.
func (s *postServiceImpl) Like(ctx context.Context, userID, postID int) error {
	if err := s.postExists(ctx, postID); err != nil {
		return err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
		userID, postID).Scan(&exists)
	if err != nil {
		return apperror.NewDatabaseError("failed to check existing like", err)
	}
	if exists {
		return apperror.NewBadRequestError("you have already liked this post", nil)
	}

	_, err = s.db.Exec(ctx, `INSERT INTO likes (user_id, post_id) VALUES ($1, $2)`, userID, postID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewBadRequestError("you have already liked this post", nil)
		}
		return apperror.NewDatabaseError("failed to register like", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": postID}).Info("like registered")
	return nil
}

// postOwner returns the owner of postID, or NotFound if the post is missing.
func (s *postServiceImpl) postOwner(ctx context.Context, postID int) (int, error) {
	var ownerID int
	err := s.db.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1`, postID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.NewNotFoundError("post not found", nil)
		}
		return 0, apperror.NewDatabaseError("failed to get post", err)
	}
	return ownerID, nil
}

func (s *postServiceImpl) postExists(ctx context.Context, postID int) error {
	_, err := s.postOwner(ctx, postID)
	return err
}

func (s *postServiceImpl) userExists(ctx context.Context, userID int) error {
	var id int
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("user not found", nil)
		}
		return apperror.NewDatabaseError("failed to get user", err)
	}
	return nil
}
