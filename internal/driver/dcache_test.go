package driver

import (
	"os"
	"path/filepath"
	"testing"

	"shiftscan/internal/classify"
	"shiftscan/internal/csp"
	"shiftscan/internal/project"
	"shiftscan/internal/refmodel"
	"shiftscan/internal/report"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt failed: %v", err)
	}

	free := classify.Score(refmodel.Default(), classify.Point{H: 7.04, C: 131.2})
	payload := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Source:    "titration.txt",
		InputHash: project.HashBytes([]byte("input")),
		Region:    uint8(csp.RegionAromatic),
		WeightH:   1.0,
		WeightC:   0.07,
		Assign:    true,
		Rows: []report.TitrationRow{
			{ID: "A45", DH: 0.05, DC: 0.3, Comb: 0.0938, Free: &free},
		},
	}

	key := CacheKey(payload.InputHash, csp.RegionAromatic, csp.Weights{H: 1.0, C: 0.07}, true)
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get missed a stored payload")
	}
	if got.Schema != diskCacheSchemaVersion || got.Source != "titration.txt" {
		t.Errorf("payload header = %+v", got)
	}
	if len(got.Rows) != 1 || got.Rows[0].ID != "A45" {
		t.Fatalf("payload rows = %+v", got.Rows)
	}
	if got.Rows[0].Free == nil {
		t.Fatal("ranked assignment lost in round trip")
	}
	if top := got.Rows[0].Free.Top(); top.AminoAcid != free.Top().AminoAcid {
		t.Errorf("cached top type = %q, want %q", top.AminoAcid, free.Top().AminoAcid)
	}
	if len(got.Rows[0].Free.Ranked) != len(free.Ranked) {
		t.Errorf("cached ranking has %d entries, want %d", len(got.Rows[0].Free.Ranked), len(free.Ranked))
	}
}

func TestDiskCacheGetAbsent(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt failed: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(project.HashBytes([]byte("nothing")), &out)
	if err != nil {
		t.Fatalf("Get on empty cache failed: %v", err)
	}
	if ok {
		t.Error("Get on empty cache reported a hit")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(project.Digest{}, &DiskPayload{}); err != nil {
		t.Errorf("nil cache Put returned error: %v", err)
	}
	ok, err := cache.Get(project.Digest{}, &DiskPayload{})
	if ok || err != nil {
		t.Errorf("nil cache Get = (%v, %v), want (false, nil)", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil cache DropAll returned error: %v", err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatalf("OpenDiskCacheAt failed: %v", err)
	}

	key := project.HashBytes([]byte("k"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir still present after DropAll: %v", err)
	}

	// повторная очистка пустого кеша не ошибка
	if err := cache.DropAll(); err != nil {
		t.Errorf("second DropAll returned error: %v", err)
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	input := project.HashBytes([]byte("peaks"))
	aliphatic := csp.Weights{H: 1.0, C: 0.34}
	aromatic := csp.Weights{H: 1.0, C: 0.07}

	base := CacheKey(input, csp.RegionAliphatic, aliphatic, false)

	if CacheKey(input, csp.RegionAliphatic, aliphatic, false) != base {
		t.Error("CacheKey is not deterministic")
	}
	if CacheKey(input, csp.RegionAromatic, aromatic, false) == base {
		t.Error("CacheKey ignores the region")
	}
	if CacheKey(input, csp.RegionAliphatic, aliphatic, true) == base {
		t.Error("CacheKey ignores the assign option")
	}
	if CacheKey(input, csp.RegionAliphatic, csp.Weights{H: 1.0, C: 0.5}, false) == base {
		t.Error("CacheKey ignores custom weights")
	}
	if CacheKey(project.HashBytes([]byte("other")), csp.RegionAliphatic, aliphatic, false) == base {
		t.Error("CacheKey ignores the input digest")
	}
}
