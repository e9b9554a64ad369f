package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Raw valve input and network JSON are
// both identified this way.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds "<kind>:<sha256>" over the JSON encoding of parts, so a
// struct such as [ResultKeyOpts] contributes every field it carries.
func hashKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		// Only plain strings and option structs are passed in.
		panic("cache: unencodable key part: " + err.Error())
	}
	return kind + ":" + Hash(data)
}
