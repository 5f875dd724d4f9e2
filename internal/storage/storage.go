package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"whatsapp-console/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one key/value row. The whole console state lives in a single
// entry, serialized as JSON.
type Entry struct {
	Key   string `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// KV is the persistence adapter: a durable local key/value store with
// JSON serialization. Read failures degrade to the caller's default and
// write failures report false; neither propagates an error.
type KV struct {
	db *gorm.DB
}

// Open connects to the store configured by cfg (sqlite by default,
// postgres when DB_DRIVER=postgres) and runs migration.
func Open(cfg *config.Config) (*KV, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBPath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return &KV{db: db}, nil
}

// OpenSQLite opens a sqlite-backed store at path. Used by tests and tools
// that bypass the env config.
func OpenSQLite(path string) (*KV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &KV{db: db}, nil
}

// Get loads the value stored under key into out. Returns false when the key
// is absent or the stored blob cannot be read or decoded; out is left
// untouched in that case.
func (s *KV) Get(key string, out interface{}) bool {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error reading key %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		log.Printf("Error decoding key %s: %v", key, err)
		return false
	}
	return true
}

// Set serializes value and upserts it under key. Returns false on failure.
func (s *KV) Set(key string, value interface{}) bool {
	blob, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error encoding key %s: %v", key, err)
		return false
	}
	entry := Entry{Key: key, Value: string(blob)}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		log.Printf("Error writing key %s: %v", key, err)
		return false
	}
	return true
}

// Remove deletes the entry under key, if any.
func (s *KV) Remove(key string) {
	if err := s.db.Delete(&Entry{}, "key = ?", key).Error; err != nil {
		log.Printf("Error removing key %s: %v", key, err)
	}
}
