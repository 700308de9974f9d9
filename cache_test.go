package vatspy

import (
	"bytes"
	"testing"
)

func TestFetchCache(t *testing.T) {
	cache := NewFetchCache()

	if _, ok := cache.Get("http://example.com/a"); ok {
		t.Error("empty cache returned a hit")
	}

	cache.Put("http://example.com/a", []byte("first"))
	cache.Put("http://example.com/b", []byte("second"))
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}

	data, ok := cache.Get("http://example.com/a")
	if !ok || !bytes.Equal(data, []byte("first")) {
		t.Errorf("Get() = %q, %v", data, ok)
	}

	cache.Put("http://example.com/a", []byte("replaced"))
	data, _ = cache.Get("http://example.com/a")
	if !bytes.Equal(data, []byte("replaced")) {
		t.Errorf("Put() did not replace, got %q", data)
	}

	cache.Invalidate("http://example.com/a")
	if _, ok := cache.Get("http://example.com/a"); ok {
		t.Error("invalidated entry still present")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() after invalidate = %d, want 1", cache.Len())
	}
}

func TestLoadSource_LocalFileBypassesCache(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache = NewFetchCache()

	if _, err := loadSource(cfg, "/no/such/file.dat"); err == nil {
		t.Error("missing local file accepted")
	}
	if cfg.Cache.Len() != 0 {
		t.Error("local file load touched the cache")
	}
}
