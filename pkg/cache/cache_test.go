package cache

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *RistrettoCache {
	t.Helper()

	c, err := New(&Config{
		NumCounters: 1000,
		MaxItems:    100,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestSetAndGet(t *testing.T) {
	c := newTestCache(t)

	if ok := c.Set("key", "value", time.Minute); !ok {
		t.Fatal("Expected set to succeed")
	}
	c.Wait() // Ristretto buffers writes

	v, found := c.Get("key")
	if !found {
		t.Fatal("Expected key to be found")
	}
	if v.(string) != "value" {
		t.Errorf("Expected value, got %v", v)
	}
}

func TestGetMissing(t *testing.T) {
	c := newTestCache(t)

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", 42, time.Minute)
	c.Wait()
	c.Delete("key")

	if _, found := c.Get("key"); found {
		t.Error("Expected key gone after delete")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "value", 50*time.Millisecond)
	c.Wait()

	time.Sleep(100 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("Expected key expired after TTL")
	}
}
