package favorites

import (
	"reflect"
	"testing"

	"github.com/korjavin/maaqo/pkg/logger"
	"github.com/korjavin/maaqo/pkg/storage"
)

func TestFavorites(t *testing.T) {
	s := New(storage.NewMemoryStore(), logger.Discard())

	ids, err := s.List(1)
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected no favorites, got %v (%v)", ids, err)
	}

	for _, id := range []string{"ceviche", "causa"} {
		added, err := s.Add(1, id)
		if err != nil || !added {
			t.Fatalf("add %s: added=%v err=%v", id, added, err)
		}
	}

	added, err := s.Add(1, "ceviche")
	if err != nil || added {
		t.Fatalf("duplicate add: added=%v err=%v", added, err)
	}

	ids, _ = s.List(1)
	if want := []string{"ceviche", "causa"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("favorites = %v, want %v", ids, want)
	}

	fav, err := s.IsFavorite(1, "causa")
	if err != nil || !fav {
		t.Fatalf("expected causa to be favorite, got %v (%v)", fav, err)
	}
	fav, _ = s.IsFavorite(2, "causa")
	if fav {
		t.Fatal("favorites leaked between chats")
	}

	removed, err := s.Remove(1, "ceviche")
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}
	removed, _ = s.Remove(1, "ceviche")
	if removed {
		t.Fatal("expected second remove to report false")
	}

	set, _ := s.Set(1)
	if !reflect.DeepEqual(set, map[string]bool{"causa": true}) {
		t.Fatalf("unexpected set %v", set)
	}
}
