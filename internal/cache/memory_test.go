package cache

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "topics", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Name != "topics" || got.Count != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	var got payload
	hit, err := c.Get(context.Background(), "missing", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected miss for absent key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "soon gone"}, 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected expired entry to miss")
	}
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k", payload{Count: 1}, time.Minute)
	c.Set(ctx, "k", payload{Count: 2}, time.Minute)

	var got payload
	if hit, _ := c.Get(ctx, "k", &got); !hit || got.Count != 2 {
		t.Fatalf("hit=%v got=%+v, want count 2", hit, got)
	}
}
