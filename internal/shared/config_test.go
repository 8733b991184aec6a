package shared_test

import (
	"testing"
	"time"

	"luxe_haven/internal/shared"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test/v1")
	t.Setenv("SESSION_TTL_SECONDS", "60")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("API_RPS", "not-a-number")

	c := shared.Load()
	if c.APIBase != "http://api.test/v1" {
		t.Fatalf("api base: %s", c.APIBase)
	}
	if c.SessionTTL != time.Minute {
		t.Fatalf("session ttl: %v", c.SessionTTL)
	}
	if c.StoreDriver != "redis" {
		t.Fatalf("unknown driver should fall back to redis, got %s", c.StoreDriver)
	}
	if c.APIRPS != 10 {
		t.Fatalf("bad int should keep default, got %d", c.APIRPS)
	}
}
