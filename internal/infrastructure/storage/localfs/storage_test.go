package localfs

import (
	"bytes"
	"context"
	"io"
	"testing"
)

func TestSaveOpenRemoveRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "sub-1_bank_statement.txt", bytes.NewReader([]byte("body"))); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := s.Open(ctx, "sub-1_bank_statement.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	got, err := io.ReadAll(r)
	r.Close()
	if err != nil || string(got) != "body" {
		t.Fatalf("unexpected content %q, err %v", got, err)
	}

	if err := s.Remove(ctx, "sub-1_bank_statement.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := s.Open(ctx, "sub-1_bank_statement.txt"); err == nil {
		t.Fatal("expected open to fail after removal")
	}
}

func TestRemoveMissingFileIsNoError(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := s.Remove(context.Background(), "never-existed"); err != nil {
		t.Fatalf("Remove() on missing file must be nil, got %v", err)
	}
}
