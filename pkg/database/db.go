package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DeviceKey represents the device_keys table: one row per kiosk tablet
// allowed on the counting endpoints
type DeviceKey struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Key       string     `gorm:"unique;not null" json:"key"`
	Name      string     `gorm:"not null" json:"name"`
	RateLimit int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used"`
}

// DeviceUsage represents the device_usage table, one row per key per day
type DeviceUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	CountsTotal  int    `gorm:"default:0" json:"counts_total"`
}

// MasterUser represents the master_users table: gateway operators, not
// application users (those live in the kitchen backend)
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditEntry records one board reconciliation action. This is gateway
// operational data only; the board's truth stays on the kitchen backend
// and is re-fetched after every action regardless of what is logged here.
type AuditEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Actor      string    `gorm:"not null" json:"actor"`
	Action     string    `gorm:"not null" json:"action"`
	RelationID int       `json:"relation_id"`
	SourceDay  int       `json:"source_day"`
	DestDay    int       `json:"dest_day"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "gateway.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&DeviceKey{}, &DeviceUsage{}, &MasterUser{}, &AuditEntry{})

	return db
}
