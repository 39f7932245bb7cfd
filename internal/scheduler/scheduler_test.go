// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"* * * * *", false},
		{"0 3 * * *", false},
		{"@hourly", false},
		{"@every 10m", false},
		{"", true},
		{"every minute", true},
		{"61 * * * *", true},
	}
	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSchedule(%q) error = %v, wantErr %v", tt.schedule, err, tt.wantErr)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	s := New(testLogger())
	noop := func(context.Context) error { return nil }

	if err := s.Register("prune", "@every 10m", noop); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := s.Register("prune", "@hourly", noop); err == nil {
		t.Error("expected an error for a duplicate name")
	}
	if err := s.Register("bad", "nope", noop); err == nil {
		t.Error("expected an error for an invalid schedule")
	}

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].Name != "prune" || jobs[0].Schedule != "@every 10m" {
		t.Errorf("Jobs() = %+v", jobs)
	}
}

func TestTrigger(t *testing.T) {
	s := New(testLogger())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	calls := 0
	boom := errors.New("boom")
	_ = s.Register("count", "@hourly", func(context.Context) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	if err := s.Trigger(context.Background(), "count"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if err := s.Trigger(context.Background(), "count"); !errors.Is(err, boom) {
		t.Errorf("Trigger() error = %v, want %v", err, boom)
	}
	if err := s.Trigger(context.Background(), "missing"); err == nil {
		t.Error("expected an error for an unknown job")
	}

	info := s.Jobs()[0]
	if calls != 2 || !info.LastRun.Equal(now) || !errors.Is(info.LastErr, boom) {
		t.Errorf("calls = %d, info = %+v", calls, info)
	}
}

func TestStartStop(t *testing.T) {
	s := New(testLogger())
	var got context.Context
	_ = s.Register("ctx", "@hourly", func(ctx context.Context) error {
		got = ctx
		return nil
	})
	s.Start()
	_ = s.Trigger(s.ctx, "ctx")
	s.Stop()

	if got == nil || got.Err() == nil {
		t.Error("job context should be canceled after Stop")
	}
}
