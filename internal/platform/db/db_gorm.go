// Package db はユーザーストア用のGORM接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"movie_backend/internal/feature/auth/domain/entity"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定を保持します。
type Config struct {
	// DatabaseURL はPostgreSQLのDSNです。空の場合はSQLitePathを使用します。
	DatabaseURL    string
	SQLitePath     string
	RunMigrations  bool
	ConnectTimeout time.Duration
}

// Opener はダイアレクタからDBを開く関数です。テストで差し替えられます。
type Opener func(d gorm.Dialector) (*gorm.DB, error)

// Dialector は設定に応じてPostgreSQLまたはSQLiteのダイアレクタを返します。
func Dialector(cfg Config) gorm.Dialector {
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL)
	}
	return sqlite.Open(cfg.SQLitePath)
}

// gormOpen は一意制約違反をgorm.ErrDuplicatedKeyに変換する設定でDBを開きます。
func gormOpen(d gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試行します。
func ConnectWithRetry(d gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(d)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "driver", d.Name(), "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB はユーザーストアに接続し、必要に応じてマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	d := Dialector(cfg)
	db, err := ConnectWithRetry(d, timeout, gormOpen)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	slog.Info("DB connection successful", "driver", d.Name(), "migrated", cfg.RunMigrations)
	return db, nil
}

// Migrate はユーザーテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
