package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "bloco.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get(ctx, "notes"); ok || err != nil {
		t.Fatalf("missing slot: ok=%v err=%v", ok, err)
	}
	for _, v := range []string{`[1]`, `[1,2]`} {
		if err := s.Set(ctx, "notes", []byte(v)); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, ok, err := s.Get(ctx, "notes")
	if !ok || err != nil || string(got) != `[1,2]` {
		t.Fatalf("get = %s, %v, %v", got, ok, err)
	}
	if _, ok, _ := s.Get(ctx, "@tarefas"); ok {
		t.Error("unrelated slot present")
	}
}
