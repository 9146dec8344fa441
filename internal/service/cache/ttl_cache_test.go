package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestTTLCacheSetGetBytes(t *testing.T) {
	c := NewTTLCache()

	if _, ok, _ := c.GetBytes("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := c.SetBytes("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	b, ok, err := c.GetBytes("k")
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if !ok || !bytes.Equal(b, []byte("payload")) {
		t.Fatalf("got %q ok=%v, want payload", b, ok)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", []byte("v"), time.Nanosecond)

	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.GetBytes("k"); ok {
		t.Fatal("expired entry should be a miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache()
	c.Set("k", []byte("v"), 0)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("zero ttl entry should persist")
	}
}
