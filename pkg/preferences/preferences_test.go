package preferences

import (
	"reflect"
	"testing"

	"github.com/korjavin/maaqo/pkg/models"
	"github.com/korjavin/maaqo/pkg/storage"
)

func TestGetDefaultsAndSave(t *testing.T) {
	s := New(storage.NewMemoryStore())

	p, err := s.Get(3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(p, models.Preferences{}) {
		t.Fatalf("expected indifferent defaults, got %+v", p)
	}

	want := models.Preferences{MaxTime: models.Int(30), Healthy: models.Bool(false)}
	if err := s.Save(3, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.Economical != nil {
		t.Fatal("absent economical preference must stay nil")
	}
}

func TestApply(t *testing.T) {
	base := models.Preferences{MaxTime: models.Int(20), Healthy: models.Bool(true)}

	tests := []struct {
		name    string
		args    []string
		want    models.Preferences
		wantErr bool
	}{
		{"no args", nil, base, false},
		{"set all", []string{"max=45", "healthy=no", "cheap=yes"},
			models.Preferences{MaxTime: models.Int(45), Healthy: models.Bool(false), Economical: models.Bool(true)}, false},
		{"clear", []string{"max=off", "healthy=any"}, models.Preferences{}, false},
		{"bad number", []string{"max=soon"}, base, true},
		{"zero minutes", []string{"max=0"}, base, true},
		{"bad flag", []string{"healthy=maybe"}, base, true},
		{"unknown key", []string{"spicy=yes"}, base, true},
		{"missing value", []string{"healthy"}, base, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(base, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
