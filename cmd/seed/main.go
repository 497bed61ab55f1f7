package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/janata-app/janata-api/config"
	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/pkg/geo"
	"github.com/janata-app/janata-api/pkg/helpers"
)

// Seeds an admin account and a sample center so a fresh database is usable
// right away. Idempotent, existing rows win.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme123")
	email := envOr("SEED_ADMIN_EMAIL", "")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := entity.NewUser(username, email, hash, entity.NoCenter)
	admin.Role = entity.RoleAdmin
	admin.IsVerified = true
	admin.VerificationLevel = entity.LevelGlobalHead

	doc, err := admin.ToJSON()
	if err != nil {
		log.Fatalf("failed to serialize admin: %v", err)
	}
	res, err := db.Exec(`
		INSERT INTO users (username, doc) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`, admin.Username, doc)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		fmt.Printf("admin %q already exists, skipped\n", username)
	} else {
		fmt.Printf("seeded admin: username=%s password=%s\n", username, password)
	}

	center := entity.NewCenter("Main Center", geo.Point{Latitude: 12.9716, Longitude: 77.5946})
	center.CenterID = envOr("SEED_CENTER_ID", "main")
	center.IsVerified = true

	cdoc, err := center.ToJSON()
	if err != nil {
		log.Fatalf("failed to serialize center: %v", err)
	}
	res, err = db.Exec(`
		INSERT INTO centers (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, center.CenterID, cdoc)
	if err != nil {
		log.Fatalf("failed to seed center: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		fmt.Printf("center %q already exists, skipped\n", center.CenterID)
	} else {
		fmt.Printf("seeded center: id=%s name=%s\n", center.CenterID, center.Name)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
