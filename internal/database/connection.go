package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. The backend is
// selected by the DB_TYPE environment variable: "sqlite" (default,
// local file under data/) or "postgres" (DATABASE_URL).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		// Create data directory if it doesn't exist
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "vocab.db")
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Create word_progress table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS word_progress (
			word TEXT PRIMARY KEY,
			mastery INTEGER DEFAULT 0,
			attempts INTEGER DEFAULT 0,
			correct INTEGER DEFAULT 0,
			box INTEGER DEFAULT 0,
			last_reviewed_session INTEGER DEFAULT 0,
			last_review_date TIMESTAMP,
			response_times TEXT DEFAULT '[]'
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create word_progress table: %v", err)
	}

	// Create personalization_model table (single row)
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS personalization_model (
			id INTEGER PRIMARY KEY,
			forgetting_curve_a REAL,
			forgetting_curve_b REAL,
			fatigue_threshold REAL,
			response_time_baseline REAL,
			accuracy_trends TEXT DEFAULT '[]',
			forget_rates TEXT DEFAULT '{}',
			confidence_level REAL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create personalization_model table: %v", err)
	}

	// Create session_log table
	var sessionLogSQL string
	if DB.DriverName() == "postgres" {
		sessionLogSQL = `
			CREATE TABLE IF NOT EXISTS session_log (
				id SERIAL PRIMARY KEY,
				session INTEGER NOT NULL,
				timestamp TIMESTAMP,
				word_count INTEGER,
				accuracy REAL,
				avg_response_time REAL,
				word_accuracies TEXT DEFAULT '[]',
				features TEXT DEFAULT '{}',
				prediction TEXT DEFAULT '{}'
			)
		`
	} else {
		sessionLogSQL = `
			CREATE TABLE IF NOT EXISTS session_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				session INTEGER NOT NULL,
				timestamp TIMESTAMP,
				word_count INTEGER,
				accuracy REAL,
				avg_response_time REAL,
				word_accuracies TEXT DEFAULT '[]',
				features TEXT DEFAULT '{}',
				prediction TEXT DEFAULT '{}'
			)
		`
	}
	if _, err = DB.Exec(sessionLogSQL); err != nil {
		return fmt.Errorf("failed to create session_log table: %v", err)
	}

	// Create session_counter table (single row)
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS session_counter (
			id INTEGER PRIMARY KEY,
			counter INTEGER DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create session_counter table: %v", err)
	}

	return nil
}
