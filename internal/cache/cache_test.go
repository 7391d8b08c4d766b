package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("prose:flood article text")
	b := CacheKey("prose:flood article text")
	c := CacheKey("prose:another article")

	if a != b {
		t.Error("identical content must produce identical keys")
	}
	if a == c {
		t.Error("different content must produce different keys")
	}
	if !strings.HasPrefix(a, "floodlens:v1:") {
		t.Errorf("key %q missing version prefix", a)
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	cache := NewDiskCache(t.TempDir(), time.Minute)
	key := CacheKey("prose:sirajganj article")
	doc := []byte(`{"tokens":["flood"],"spans":null}`)

	if err := cache.Set(key, doc, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found := cache.Get(key)
	if !found {
		t.Fatal("expected a hit after set")
	}
	if string(got) != string(doc) {
		t.Errorf("payload = %q, want %q", got, doc)
	}
}

func TestDiskCache_ExpiredEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache := NewDiskCache(dir, time.Minute)
	key := CacheKey("prose:stale article")

	if err := cache.Set(key, []byte("doc"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, found := cache.Get(key); found {
		t.Error("expired entry served")
	}
	// The miss removes the stale file
	if _, err := os.Stat(filepath.Join(dir, key+".json")); !os.IsNotExist(err) {
		t.Error("expired entry left on disk")
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache := NewDiskCache(dir, time.Minute)
	key := CacheKey("prose:mangled article")

	if err := os.WriteFile(filepath.Join(dir, key+".json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, found := cache.Get(key); found {
		t.Error("corrupt entry served")
	}
	if _, err := os.Stat(filepath.Join(dir, key+".json")); !os.IsNotExist(err) {
		t.Error("corrupt entry left on disk")
	}
}

func TestLayeredCache_DiskHitPromotedToMemory(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Minute)
	key := CacheKey("prose:promoted article")

	// Seed only the disk layer, as after a process restart
	if err := layered.disk.Set(key, []byte("doc"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}
	if _, found := layered.memory.Get(key); found {
		t.Fatal("memory layer unexpectedly warm")
	}

	got, found := layered.Get(key)
	if !found || string(got) != "doc" {
		t.Fatalf("Get = %q, %v; want doc hit", got, found)
	}

	if _, found := layered.memory.Get(key); !found {
		t.Error("disk hit was not promoted to the memory layer")
	}
}
