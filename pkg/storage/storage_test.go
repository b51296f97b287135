package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type item struct {
	Name  string   `json:"name"`
	Parts []string `json:"parts"`
}

func stores(t *testing.T) map[string]Scanner {
	t.Helper()

	badgerStore, err := NewInMemory()
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	t.Cleanup(func() { badgerStore.Close() })

	return map[string]Scanner{
		"badger": badgerStore,
		"memory": NewMemoryStore(),
	}
}

func TestStoreCRUD(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			want := item{Name: "causa", Parts: []string{"papa", "limon"}}

			if err := s.Set("recipe:causa", want); err != nil {
				t.Fatalf("set: %v", err)
			}

			var got item
			if err := s.Get("recipe:causa", &got); err != nil {
				t.Fatalf("get: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %+v, want %+v", got, want)
			}

			var missing item
			if err := s.Get("recipe:nope", &missing); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := s.Delete("recipe:causa"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := s.Get("recipe:causa", &got); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}

			if err := s.Delete("recipe:never-existed"); err != nil {
				t.Fatalf("delete missing key: %v", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"chat:1:pantry", "chat:1:favorites", "chat:2:pantry", "catalog:recipes"} {
				if err := s.Set(k, k); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			keys, err := s.List("chat:1:")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			want := []string{"chat:1:favorites", "chat:1:pantry"}
			if !reflect.DeepEqual(keys, want) {
				t.Fatalf("got %v, want %v", keys, want)
			}
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	parts := []string{"a"}
	if err := s.Set("k", item{Parts: parts}); err != nil {
		t.Fatal(err)
	}
	parts[0] = "changed"

	var got item
	if err := s.Get("k", &got); err != nil {
		t.Fatal(err)
	}
	if got.Parts[0] != "a" {
		t.Fatalf("stored value aliased caller slice: %v", got.Parts)
	}
}

func TestRunGCLoopStops(t *testing.T) {
	s, err := NewInMemory()
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunGCLoop(ctx, 5*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunGCLoop returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("RunGCLoop did not stop after cancel")
	}
}
