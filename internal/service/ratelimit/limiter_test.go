package ratelimit

import "testing"

func TestAllowConsumesTokens(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("client", 3, 0.0001) {
			t.Fatalf("request %d should pass with capacity 3", i)
		}
	}
	if l.Allow("client", 3, 0.0001) {
		t.Fatal("bucket exhausted, request should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0.0001) {
		t.Fatal("first request for key a should pass")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Fatal("key a exhausted, request should be rejected")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatal("key b has its own bucket, request should pass")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()

	if !l.Allow("client", 1, 1e9) {
		t.Fatal("first request should pass")
	}
	// Huge refill rate restores the bucket between calls.
	if !l.Allow("client", 1, 1e9) {
		t.Fatal("refilled bucket should allow the request")
	}
}
