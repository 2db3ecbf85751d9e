// Package middleware はリクエストIDの付与とアクセスログ出力のginミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
	RequestIDHeader = "X-Request-Id"
	// ContextRequestID はginコンテキストにリクエストIDを保存するキーです。
	ContextRequestID = "requestID"
)

// RequestID は受信したリクエストIDを引き継ぎ、無ければ生成します。
// IDはレスポンスヘッダーとginコンテキストの両方に設定されます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom はginコンテキストからリクエストIDを取り出します。
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// RequestLog はリクエストごとに構造化ログを1行出力します。
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", RequestIDFrom(c),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			slog.Error("http_request", attrs...)
		case status >= 400:
			slog.Warn("http_request", attrs...)
		default:
			slog.Info("http_request", attrs...)
		}
	}
}
