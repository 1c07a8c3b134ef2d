package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("A45\t7.04\t131.2"))
	b := HashBytes([]byte("A45\t7.04\t131.2"))
	if a != b {
		t.Error("HashBytes is not deterministic for equal input")
	}

	c := HashBytes([]byte("A45\t7.04\t131.3"))
	if a == c {
		t.Error("HashBytes collision for different input")
	}
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peaks.txt")
	content := []byte("G12\t8.10\t45.1\t8.15\t45.9\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	fromFile, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile failed: %v", err)
	}
	if fromFile != HashBytes(content) {
		t.Error("HashFile digest differs from HashBytes of the same content")
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("HashFile on missing file returned nil error")
	}
}

func TestCombineOrderSensitive(t *testing.T) {
	content := HashBytes([]byte("content"))
	p1 := HashBytes([]byte("region=aliphatic"))
	p2 := HashBytes([]byte("assign=true"))

	ab := Combine(content, p1, p2)
	ba := Combine(content, p2, p1)
	if ab == ba {
		t.Error("Combine ignores part order")
	}

	again := Combine(content, p1, p2)
	if ab != again {
		t.Error("Combine is not deterministic")
	}

	plain := Combine(content)
	if plain == ab {
		t.Error("Combine with no parts equals combined digest")
	}
}
