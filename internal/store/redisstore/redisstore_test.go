package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	m, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	s := New(redis.NewClient(&redis.Options{Addr: m.Addr()}), DefaultPrefix)
	defer s.Close()

	if _, ok, err := s.Get(ctx, "@tarefas"); ok || err != nil {
		t.Fatalf("missing slot: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "@tarefas", []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Get(ctx, "@tarefas")
	if !ok || err != nil || string(got) != `[]` {
		t.Fatalf("get = %s, %v, %v", got, ok, err)
	}
	raw, err := m.Get("bloco:@tarefas")
	if err != nil || raw != `[]` {
		t.Errorf("raw key = %q, %v", raw, err)
	}
	if m.TTL("bloco:@tarefas") != 0 {
		t.Error("slot has a ttl")
	}
}

func TestDial(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	addr := m.Addr()

	s, err := Dial(context.Background(), addr, 0, "x:")
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	m.Close()
	if _, err := Dial(context.Background(), addr, 0, "x:"); err == nil {
		t.Error("dial to closed server succeeded")
	}
}
