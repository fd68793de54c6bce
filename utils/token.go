package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewWebhookToken returns a fresh random secret for unauthenticated ingestion.
func NewWebhookToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")
}
