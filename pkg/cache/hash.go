package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashJSON digests the JSON encoding of v under a namespace, so equal
// options always land on the same key. Struct fields encode in declaration
// order, which keeps the digest stable across runs.
func hashJSON(namespace string, v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Unencodable values hash their encoding error instead.
		data = []byte(err.Error())
	}
	return namespace + ":" + Hash(data)
}
