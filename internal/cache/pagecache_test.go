package cache

import (
	"context"
	"testing"
	"time"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()

	url := "https://example.com/post"
	body := []byte("<html><body>hi</body></html>")
	if err := c.Save(ctx, url, "text/html", `"etag1"`, "Mon, 01 Jan 2024 00:00:00 GMT", body); err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("load meta: %v", err)
	}
	if meta.ETag != `"etag1"` || meta.ContentType != "text/html" {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	got, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("load body: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body mismatch: %q", got)
	}
}

func TestFreshRespectsMaxAge(t *testing.T) {
	c := &PageCache{Dir: t.TempDir(), MaxAge: time.Hour}
	now := time.Now().UTC()

	if c.Fresh(&Entry{SavedAt: now.Add(-30 * time.Minute)}) == false {
		t.Fatalf("recent entry should be fresh")
	}
	if c.Fresh(&Entry{SavedAt: now.Add(-2 * time.Hour)}) {
		t.Fatalf("old entry should be stale")
	}

	zero := &PageCache{Dir: c.Dir}
	if zero.Fresh(&Entry{SavedAt: now}) {
		t.Fatalf("MaxAge zero should never report fresh")
	}
}

func TestLoadMetaMissing(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	if _, err := c.LoadMeta(context.Background(), "https://example.com/missing"); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

func TestPurgeByAge(t *testing.T) {
	dir := t.TempDir()
	c := &PageCache{Dir: dir}
	ctx := context.Background()
	if err := c.Save(ctx, "https://example.com/a", "text/html", "", "", []byte("a")); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Entries newer than maxAge must survive.
	n, err := PurgeByAge(dir, time.Hour)
	if err != nil || n != 0 {
		t.Fatalf("purge removed %d err %v; want 0, nil", n, err)
	}
	if _, err := c.LoadBody(ctx, "https://example.com/a"); err != nil {
		t.Fatalf("entry should survive purge: %v", err)
	}
}
