package store

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const checksumLen = 32 // hex chars

func checksum(profile, key, value string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(profile))
	h.Write([]byte{0})
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}

// seal prefixes value with its checksum: "<hex>:<value>".
func seal(profile, key, value string) string {
	return checksum(profile, key, value) + ":" + value
}

func unseal(profile, key, raw string) (string, bool) {
	sum, value, found := strings.Cut(raw, ":")
	if !found || len(sum) != checksumLen {
		return "", false
	}
	want := checksum(profile, key, value)
	if subtle.ConstantTimeCompare([]byte(sum), []byte(want)) != 1 {
		return "", false
	}
	return value, true
}
