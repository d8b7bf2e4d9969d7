package project

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// String returns the hex form used for cache file names.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// DigestBytes hashes raw content.
func DigestBytes(b []byte) Digest { return sha256.Sum256(b) }

// DigestFile hashes a file on disk.
func DigestFile(path string) (Digest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	return DigestBytes(b), nil
}

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок parts должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
