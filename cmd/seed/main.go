package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eventapp/server/config"
	"github.com/eventapp/server/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@eventapp.local"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, email_verified)
		VALUES ($1, $2, $3, true)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	events := []struct {
		title, desc, date, time, location, category, format string
		maxParticipants                                     int
		price                                               float64
	}{
		{"Go Meetup Jakarta", "Monthly community meetup for Go developers.", "2026-10-12", "18:30", "Jakarta", "technology", "offline", 80, 0},
		{"Remote Architecture Workshop", "Hands-on workshop on service design.", "2026-11-03", "14:00", "Online", "education", "online", 200, 15},
		{"Startup Demo Day", "Local startups present their products.", "2026-12-01", "10:00", "Bandung", "business", "hybrid", 150, 5},
	}

	for _, e := range events {
		var eid string
		err = db.QueryRow(`
			INSERT INTO events (title, description, date, time, location, max_participants, price, category, format, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, e.title, e.desc, e.date, e.time, e.location, e.maxParticipants, e.price, e.category, e.format, id).Scan(&eid)
		if err != nil {
			log.Fatalf("failed to seed event %q: %v", e.title, err)
		}
		fmt.Printf("seeded event: id=%s title=%q\n", eid, e.title)
	}
}
