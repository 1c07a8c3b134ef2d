package project

import (
	"crypto/sha256"
	"io"
	"os"
)

// Digest - фиксированный 256 битный хеш
type Digest [32]byte

// HashBytes returns the SHA-256 digest of raw input bytes.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// HashFile reads the file at path and returns its content digest.
func HashFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Digest{}, err
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Combine строит составной хеш: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
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
