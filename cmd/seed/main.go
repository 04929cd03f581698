package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bookhaven/bookstore-backend/config"
	"github.com/bookhaven/bookstore-backend/pkg/helpers"
)

// Seeds a couple of buyer and seller accounts plus a small catalog so the
// API is usable right after migrations. All accounts share the password
// "password123".
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	buyers := []struct{ name, email string }{
		{"Alice Johnson", "alice@example.com"},
		{"Bob Smith", "bob@example.com"},
	}
	for _, b := range buyers {
		var id int64
		err := db.QueryRow(`
			INSERT INTO buyers (name, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, b.name, b.email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed buyer %s: %v", b.email, err)
		}
		fmt.Printf("seeded buyer: id=%d email=%s\n", id, b.email)
	}

	sellers := []struct{ name, email string }{
		{"Charlie's Books", "charlie@example.com"},
		{"Dave's Bookshop", "dave@example.com"},
	}
	sellerIDs := make([]int64, 0, len(sellers))
	for _, s := range sellers {
		var id int64
		err := db.QueryRow(`
			INSERT INTO sellers (name, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, s.name, s.email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed seller %s: %v", s.email, err)
		}
		sellerIDs = append(sellerIDs, id)
		fmt.Printf("seeded seller: id=%d email=%s\n", id, s.email)
	}

	books := []struct {
		title, author, published string
		price                    float64
		seller                   int64
	}{
		{"The Pragmatic Programmer", "Andrew Hunt", "1999-10-30", 42.50, sellerIDs[0]},
		{"Clean Architecture", "Robert C. Martin", "2017-09-20", 31.99, sellerIDs[0]},
		{"Designing Data-Intensive Applications", "Martin Kleppmann", "2017-03-16", 54.95, sellerIDs[1]},
	}
	for _, b := range books {
		if _, err := db.Exec(`
			INSERT INTO books (title, author, published_date, price, seller_id)
			SELECT $1, $2, $3::date, $4, $5
			WHERE NOT EXISTS (
				SELECT 1 FROM books WHERE title = $1 AND seller_id = $5
			)
		`, b.title, b.author, b.published, b.price, b.seller); err != nil {
			log.Fatalf("failed to seed book %q: %v", b.title, err)
		}
		fmt.Printf("seeded book: %s\n", b.title)
	}
}
