package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// TeeSHA256 returns a writer that copies into w while hashing, and a func that
// yields the hex digest of everything written so far.
func TeeSHA256(w io.Writer) (io.Writer, func() string) {
	h := sha256.New()
	return io.MultiWriter(w, h), func() string { return hex.EncodeToString(h.Sum(nil)) }
}

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}
