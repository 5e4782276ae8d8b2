// Package seed populates the database with a small set of development users
// and posts. It is destructive: existing likes, posts and users are removed
// first so the seed is deterministic.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/user/periferia-go/auth"
)

// seedPassword is the plaintext password every seeded user gets.
const seedPassword = "123456"

type seedUser struct {
	firstName string
	lastName  string
	email     string
	birthDate time.Time
	alias     string
}

var seedUsers = []seedUser{
	{"Juan", "Parez", "juan@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "juanp"},
	{"Maria", "Gomez", "maria@example.com", time.Date(1992, 5, 10, 0, 0, 0, 0, time.UTC), "mariag"},
	{"Luis", "Ramirez", "luis@example.com", time.Date(1988, 11, 20, 0, 0, 0, 0, time.UTC), "luisr"},
}

// Run wipes the social tables and inserts the seed users, each with one
// greeting post.
func Run(ctx context.Context, db *pgxpool.Pool, log *logrus.Logger) error {
	for _, table := range []string{"likes", "posts", "users"} {
		if _, err := db.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	for _, u := range seedUsers {
		passwordHash, err := auth.HashPassword(seedPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		var userID int
		err = db.QueryRow(ctx, `
			INSERT INTO users (first_name, last_name, email, password_hash, birth_date, alias)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			u.firstName, u.lastName, u.email, passwordHash, u.birthDate, u.alias,
		).Scan(&userID)
		if err != nil {
			return fmt.Errorf("failed to insert seed user %s: %w", u.alias, err)
		}

		_, err = db.Exec(ctx, `INSERT INTO posts (message, user_id) VALUES ($1, $2)`,
			fmt.Sprintf("Hola, soy %s", u.firstName), userID)
		if err != nil {
			return fmt.Errorf("failed to insert seed post for %s: %w", u.alias, err)
		}

		log.WithFields(logrus.Fields{"user_id": userID, "alias": u.alias}).Info("seeded user")
	}

	log.Info("seed completed")
	return nil
}
