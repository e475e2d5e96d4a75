package slogx

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Secret returns an attr carrying a short fingerprint of value rather than the
// value itself. Credentials (API keys, passwords, raw tokens) must only reach
// a log line through this helper.
func Secret(key, value string) slog.Attr {
	if value == "" {
		return slog.String(key, "")
	}

	sum := sha256.Sum256([]byte(value))
	return slog.String(key, "sha256:"+hex.EncodeToString(sum[:])[:12])
}
