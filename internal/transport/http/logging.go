package http

import (
	"encoding/json"
	"log"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

// registerLogging emits one JSON line per request. Request and response
// bodies are summarized with every password-bearing field redacted before
// anything touches the log stream.
func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if id, ok := c.Get(contextUserIDKey).(uuid.UUID); ok {
				userID = id.String()
			}

			payload := struct {
				Time      string `json:"time"`
				UserID    string `json:"user_id"`
				LatencyMS int64  `json:"latency_ms"`
				Request   struct {
					Method string `json:"method"`
					URI    string `json:"uri"`
					Body   any    `json:"body,omitempty"`
				} `json:"request"`
				Response struct {
					Status int    `json:"status"`
					Body   any    `json:"body,omitempty"`
					Error  string `json:"error,omitempty"`
				} `json:"response"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserID:    userID,
				LatencyMS: v.Latency.Milliseconds(),
			}

			payload.Request.Method = v.Method
			payload.Request.URI = v.URI
			payload.Request.Body = c.Get(requestBodyLogKey)
			payload.Response.Status = v.Status
			payload.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				payload.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

func sanitizeBody(body []byte, contentType string) any {
	if len(body) == 0 {
		return nil
	}

	lowered := strings.ToLower(strings.TrimSpace(contentType))

	if strings.HasPrefix(lowered, "application/json") || json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return sanitizeJSON(data, "")
		}
	}

	if strings.HasPrefix(lowered, "application/x-www-form-urlencoded") {
		if values, err := url.ParseQuery(string(body)); err == nil && len(values) > 0 {
			sanitized := make(map[string]any, len(values))
			for key, vals := range values {
				if isSensitiveKey(key) {
					sanitized[key] = "redacted"
					continue
				}
				sanitized[key] = clampString(strings.Join(vals, ","))
			}
			return sanitized
		}
	}

	if !utf8.Valid(body) {
		return "binary"
	}
	text := string(body)
	if strings.Contains(strings.ToLower(text), "password") || strings.Contains(strings.ToLower(text), "token") {
		return "redacted"
	}
	return clampString(text)
}

func sanitizeJSON(value any, keyHint string) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				result[key] = "redacted"
				continue
			}
			result[key] = sanitizeJSON(val, strings.ToLower(key))
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		if isSensitiveKey(keyHint) {
			return "redacted"
		}
		return clampString(v)
	default:
		return v
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "password") || strings.Contains(lower, "token")
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}
