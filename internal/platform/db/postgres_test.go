package db

import (
	"context"
	"testing"
)

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(context.Background(), "", Options{}); err == nil {
		t.Fatalf("expected an error for an empty dsn")
	}
}

func TestNilPostgresIsSafe(t *testing.T) {
	var pg *Postgres
	if err := pg.Close(); err != nil {
		t.Fatalf("close on nil handle: %v", err)
	}
	if err := pg.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping on nil handle to fail")
	}
}
