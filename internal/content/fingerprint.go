package content

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/nao1215/brokerseo/internal/model"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a hex BLAKE2b-256 digest of the generated content.
// Two renders with identical text, statistics and picks share a fingerprint,
// which lets the build history report which pages changed.
func Fingerprint(gc model.GeneratedContent) (string, error) {
	data, err := json.Marshal(gc)
	if err != nil {
		return "", fmt.Errorf("failed to encode content: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
