package notify

import (
	"testing"
	"time"
)

func TestFeed_PushAndActive(t *testing.T) {
	feed := NewFeed(time.Minute)
	feed.Push(Success, "Request forwarded successfully!")
	feed.Push(Error, "Failed to reject request.")

	active := feed.Active()
	if len(active) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(active))
	}
	if active[0].Kind != Success || active[1].Kind != Error {
		t.Fatalf("unexpected order: %+v", active)
	}
	if active[0].ID == "" || active[0].ID == active[1].ID {
		t.Fatal("expected distinct non-empty notice ids")
	}
}

func TestFeed_BlankMessagesDropped(t *testing.T) {
	feed := NewFeed(time.Minute)
	feed.Push(Success, "")
	feed.Push(Success, "   ")
	if got := len(feed.Active()); got != 0 {
		t.Fatalf("expected 0 notices, got %d", got)
	}
}

func TestFeed_NoticesExpire(t *testing.T) {
	feed := NewFeed(10 * time.Second)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	feed.now = func() time.Time { return base }

	feed.Push(Info, "first")
	feed.now = func() time.Time { return base.Add(5 * time.Second) }
	feed.Push(Info, "second")

	feed.now = func() time.Time { return base.Add(12 * time.Second) }
	active := feed.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 live notice, got %d", len(active))
	}
	if active[0].Message != "second" {
		t.Fatalf("wrong notice survived: %q", active[0].Message)
	}
}

func TestFeed_BoundedSize(t *testing.T) {
	feed := NewFeed(time.Hour)
	feed.max = 3
	for i := 0; i < 10; i++ {
		feed.Push(Info, "notice")
	}
	if got := len(feed.Active()); got != 3 {
		t.Fatalf("expected feed capped at 3, got %d", got)
	}
}

func TestFeed_Clear(t *testing.T) {
	feed := NewFeed(time.Minute)
	feed.Push(Info, "notice")
	feed.Clear()
	if got := len(feed.Active()); got != 0 {
		t.Fatalf("expected empty feed after clear, got %d", got)
	}
}
