package db

import (
	"encoding/json"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts demo users and listings for local development. It is guarded
// by SEED_DEMO_DATA so demo fixtures never masquerade as real empty-state
// data, and it is a no-op once any user exists.
func Seed() error {
	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	demoHash := string(hashed)

	users := []struct {
		id, name, email, college, status string
	}{
		{"seed-rahul", "Rahul Sharma", "rahul@demo.gradkart.in", "IIT Delhi", "approved"},
		{"seed-priya", "Priya Patel", "priya@demo.gradkart.in", "NIT Trichy", "approved"},
		{"seed-amit", "Amit Verma", "amit@demo.gradkart.in", "BITS Pilani", "pending"},
	}
	for _, u := range users {
		_, err := conn.Exec(`
			INSERT INTO users (id, name, email, phone, college, password_hash, status, verification_type, created_at)
			VALUES (?, ?, ?, '9000000000', ?, ?, ?, 'email', ?)
		`, u.id, u.name, u.email, u.college, demoHash, u.status, now)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(`INSERT INTO wallets (user_id) VALUES (?)`, u.id); err != nil {
			return err
		}
	}

	listings := []struct {
		id, seller, title, category string
		price                       int64
	}{
		{"seed-macbook", "seed-rahul", "MacBook Air M1", "electronics", 45000},
		{"seed-drafter", "seed-priya", "Engineering drafter kit", "stationery", 600},
		{"seed-cycle", "seed-rahul", "Hero Sprint cycle", "sports", 3500},
	}
	images, _ := json.Marshal([]string{})
	for _, l := range listings {
		_, err := conn.Exec(`
			INSERT INTO listings (id, seller_id, title, category, price, condition, description, images, status, created_at)
			VALUES (?, ?, ?, ?, ?, 'good', 'Demo listing', ?, 'active', ?)
		`, l.id, l.seller, l.title, l.category, l.price, string(images), now)
		if err != nil {
			return err
		}
	}

	log.Println("Seeded demo data")
	return nil
}
