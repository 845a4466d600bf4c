// Package dochash fingerprints a set of uploaded documents. The digest is
// the cache key that makes repeated submissions of byte-identical documents
// idempotent: it depends only on file content and document role, never on
// filenames or upload order.
package dochash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/asingla/credscope/internal/core/domain"
)

// Digest hashes each file independently, joins "role:hex" pairs in lexical
// role order, and hashes the concatenation once more.
func Digest(files map[domain.DocumentRole][]byte) string {
	roles := make([]string, 0, len(files))
	for role := range files {
		roles = append(roles, string(role))
	}
	sort.Strings(roles)

	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		content := files[domain.DocumentRole(role)]
		if len(content) == 0 {
			continue
		}
		fileSum := sha256.Sum256(content)
		parts = append(parts, role+":"+hex.EncodeToString(fileSum[:]))
	}

	combined := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(combined[:])
}
