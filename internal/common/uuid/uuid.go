package uuid

import (
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/monopoly/internal/common/uuid UUID

// UUID generates identifiers for players, trades and chat messages
type UUID interface {
	NewUUID() string
}

// DefaultUUID implements the UUID interface using the uuid package
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// ShortCode turns an id into an upper-case code of n hex characters, e.g. for room codes
func ShortCode(id string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}
