package main

import (
	"context"
	"cows-tsp/internal/adapters/matrixstore"
	"cows-tsp/internal/adapters/repositories"
	"cows-tsp/internal/config"
	"cows-tsp/internal/platform/db"
	"cows-tsp/internal/ports"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
)

// dbtool prepares Postgres for MATRIX_STORE=postgres: it creates the schema
// and, when a file-backed matrix exists, imports it under the same key.
func main() {
	config.LoadDotEnv()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	matrixDir := config.Get("MATRIX_DIR", ".")
	matrixKey := config.Get("MATRIX_KEY", "distances")

	if err := initAndImport(ctx, conn, matrixDir, matrixKey); err != nil {
		log.Fatal(err)
	}
}

func initAndImport(ctx context.Context, conn *sql.DB, matrixDir, matrixKey string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and import: %w", err)
	}
	log.Println("Schema ready.")

	file := matrixstore.NewFileMatrixStore(matrixDir)
	m, err := file.Load(ctx, matrixKey)
	if errors.Is(err, ports.ErrMatrixNotFound) {
		log.Printf("No matrix file at %s; nothing to import.", file.Path(matrixKey))
		return nil
	}
	if err != nil {
		return fmt.Errorf("init and import: %w", err)
	}

	log.Printf("Importing matrix key=%s size=%d...", matrixKey, len(m))
	if err := matrixstore.NewPostgresMatrixStore(conn).Save(ctx, matrixKey, m); err != nil {
		return fmt.Errorf("init and import: %w", err)
	}
	log.Println("Import complete.")

	return nil
}
