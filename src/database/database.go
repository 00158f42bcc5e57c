package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/config"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// DB represents a database connection
type DB struct {
	*sql.DB
	name   string
	logger *logrus.Logger
}

// NewDB creates a new database connection.
// name は接続先の識別子（"catalog" / "store"）で、ログにのみ使用される。
func NewDB(name string, cfg *config.DatabaseConfig, logger *logrus.Logger) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", name, err)
	}

	// 接続をテスト
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s database: %w", name, err)
	}

	// 接続プールの設定
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.WithField("database", name).Info("データベースに接続しました")

	return &DB{
		DB:     db,
		name:   name,
		logger: logger,
	}, nil
}

// NewWithDB wraps an already-open *sql.DB handle.
// 接続確立を行わないため、モックドライバを使うテストからも利用できる。
func NewWithDB(db *sql.DB, name string, logger *logrus.Logger) *DB {
	return &DB{
		DB:     db,
		name:   name,
		logger: logger,
	}
}

// Name returns the connection identifier
func (db *DB) Name() string {
	return db.name
}

// Close closes the database connection
func (db *DB) Close() error {
	db.logger.WithField("database", db.name).Info("データベース接続を閉じています")
	return db.DB.Close()
}

// Health checks database health
func (db *DB) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
