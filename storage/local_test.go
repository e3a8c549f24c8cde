package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorePutDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "/uploads/")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	url, err := s.Put(ctx, "exam/photo.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/exam/photo.jpg" {
		t.Errorf("url = %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "exam", "photo.jpg"))
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("stored file = %q, %v", data, err)
	}

	if err := s.Delete(ctx, "exam/photo.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "exam/photo.jpg"); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
}

func TestLocalStoreKeepsKeysInsideBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "uploads"), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	url, err := s.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), "")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if url != "/uploads/escape.txt" {
		t.Errorf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads", "escape.txt")); err != nil {
		t.Errorf("file not written inside base: %v", err)
	}
}

func TestLocalStoreRejectsEmptyKey(t *testing.T) {
	s, err := NewLocalStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put(context.Background(), "", strings.NewReader("x"), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New("ftp"); err == nil {
		t.Fatal("expected error")
	}
}
