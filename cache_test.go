package immosim

import "testing"

func TestCacheKey_Stable(t *testing.T) {
	buildings := []Building{office("Tour A"), office("Tour B")}
	k1, err := CacheKey(DefaultConfig(), buildings)
	if err != nil {
		t.Fatalf("CacheKey() returned unexpected error: %v", err)
	}
	k2, err := CacheKey(DefaultConfig(), buildings)
	if err != nil {
		t.Fatalf("CacheKey() returned unexpected error: %v", err)
	}
	if k1 != k2 {
		t.Errorf("same input hashed to %q and %q", k1, k2)
	}
}

func TestCacheKey_SensitiveToInput(t *testing.T) {
	base := []Building{office("Tour A")}
	k1, _ := CacheKey(DefaultConfig(), base)

	changed := office("Tour A")
	changed.LTV = 61
	k2, _ := CacheKey(DefaultConfig(), []Building{changed})
	if k1 == k2 {
		t.Error("changing an assumption did not change the cache key")
	}

	cfg := DefaultConfig()
	cfg.OccupancyGrowth = 0.5
	k3, _ := CacheKey(cfg, base)
	if k1 == k3 {
		t.Error("changing the config did not change the cache key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	if _, ok := c.Get("missing"); ok {
		t.Error("Get() on an empty cache reported a hit")
	}
	if err := c.Set("k", "report"); err != nil {
		t.Fatalf("Set() returned unexpected error: %v", err)
	}
	got, ok := c.Get("k")
	if !ok || got != "report" {
		t.Errorf("Get() = %q, %v; want \"report\", true", got, ok)
	}
}
