// Package tempid allocates client-side placeholder identifiers for
// questions that have not been persisted yet. The backend must never see
// one: they are stripped on save and mapped to real identifiers during
// reconciliation.
package tempid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefix is the reserved marker. No real identifier starts with it.
const Prefix = "temp_"

// New returns a fresh temporary identifier, collision-resistant across
// one editing session (millisecond timestamp plus random suffix).
func New() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s%d%s", Prefix, time.Now().UnixMilli(), suffix)
}

// Is reports whether id is a temporary identifier.
func Is(id string) bool {
	return strings.HasPrefix(id, Prefix)
}
