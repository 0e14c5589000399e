package mcp

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"tableflip.dev/campusboard/pkg/board"
	"tableflip.dev/campusboard/pkg/filter"
	"tableflip.dev/campusboard/pkg/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	b := board.New(store.NewMemory())
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc := NewService(b)
	svc.Now = func() time.Time { return time.Date(2026, time.February, 15, 12, 0, 0, 0, time.Local) }
	return svc
}

func TestServiceListNoticesUrgentFirst(t *testing.T) {
	svc := newTestService(t)
	notices, err := svc.ListNotices(context.Background(), filter.Criteria{})
	if err != nil {
		t.Fatalf("ListNotices failed: %v", err)
	}
	if len(notices) != 3 {
		t.Fatalf("expected 3 notices, got %d", len(notices))
	}
	if !notices[0].Urgent {
		t.Fatalf("expected urgent notice first, got %+v", notices[0])
	}
	if notices[0].DateDisplay != "Feb 12, 2026" {
		t.Fatalf("unexpected date display %q", notices[0].DateDisplay)
	}
}

func TestServiceAddNoticeDefaultsDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddNotice(ctx, AddNoticeOptions{
		Title:       "Bus timings changed",
		Description: "Route 4 leaves at 8:10",
		Department:  "all",
		Category:    "public",
	})
	if err != nil {
		t.Fatalf("AddNotice failed: %v", err)
	}
	if dto.Date != "2026-02-15" {
		t.Fatalf("expected today's date, got %s", dto.Date)
	}
	if dto.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := svc.NoticeByID(ctx, strconv.FormatInt(dto.ID, 10))
	if err != nil {
		t.Fatalf("NoticeByID failed: %v", err)
	}
	if got.Title != dto.Title {
		t.Fatalf("expected %q, got %q", dto.Title, got.Title)
	}
}

func TestServiceAddNoticeValidation(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddNotice(context.Background(), AddNoticeOptions{Title: "  "})
	if !errors.Is(err, board.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteRequiresConfirm(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if err := svc.DeleteNotice(ctx, "101", false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if _, err := svc.NoticeByID(ctx, "101"); err != nil {
		t.Fatalf("unconfirmed delete removed the notice: %v", err)
	}
	if err := svc.DeleteNotice(ctx, "101", true); err != nil {
		t.Fatalf("DeleteNotice failed: %v", err)
	}
	if _, err := svc.NoticeByID(ctx, "101"); !errors.Is(err, ErrNoticeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.DeleteNotice(ctx, "101", true); err != nil {
		t.Fatalf("deleting a missing notice should not fail: %v", err)
	}
	if err := svc.DeleteNotice(ctx, "abc", true); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestServiceUpcomingEvents(t *testing.T) {
	svc := newTestService(t)
	events, err := svc.ListEvents(context.Background(), true)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 upcoming events, got %d", len(events))
	}
	if events[0].TimeDisplay != "2:00 PM" {
		t.Fatalf("unexpected time display %q", events[0].TimeDisplay)
	}
}

func TestServiceMonth(t *testing.T) {
	svc := newTestService(t)
	month, err := svc.Month(context.Background(), "2026-02")
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	if len(month.Days) != 28 {
		t.Fatalf("expected 28 days, got %d", len(month.Days))
	}
	if len(month.Events) != 3 {
		t.Fatalf("expected 3 events in February, got %d", len(month.Events))
	}
	if !month.Days[14].IsToday {
		t.Fatal("expected Feb 15 flagged as today")
	}
	if _, err := svc.Month(context.Background(), "February"); err == nil {
		t.Fatal("expected invalid month error")
	}
}

func TestServiceSlideQueue(t *testing.T) {
	svc := newTestService(t)
	queue, err := svc.SlideQueue(context.Background())
	if err != nil {
		t.Fatalf("SlideQueue failed: %v", err)
	}
	// 1 urgent notice, 3 events, 2 other notices.
	if len(queue) != 6 {
		t.Fatalf("expected 6 slides, got %d", len(queue))
	}
	if queue[0].Tag != "URGENT NOTICE" || queue[1].Kind != "event" {
		t.Fatalf("unexpected queue head: %+v %+v", queue[0], queue[1])
	}
}
