// Package mongodb は映画カタログ用のMongoDBクライアントを生成します。
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Config はMongoDB接続設定を保持します。
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// ClientOptions は設定からドライバのクライアントオプションを組み立てます。
func ClientOptions(cfg Config) (*options.ClientOptions, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb uri is required")
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout), nil
}

// Connect はMongoDBに接続し、プライマリへのPingで疎通を確認します。
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts, err := ClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	slog.Info("MongoDB connection successful", "database", cfg.Database)
	return client, nil
}

// Ping はヘルスチェック用にプライマリへの疎通を確認します。
func Ping(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
