package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// NewToken mints a session token: a millisecond timestamp plus three random
// bytes. Uniqueness over the ledger's lifetime is enforced by the unique
// index on the column; a collision is a hard failure, never retried.
func NewToken() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token entropy: %w", err)
	}
	return fmt.Sprintf("TKN%d%s", time.Now().UnixMilli(), strings.ToUpper(hex.EncodeToString(buf))), nil
}
