package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid", input: "2026-01-05", want: Date{2026, time.January, 5}},
		{name: "leap day", input: "2024-02-29", want: Date{2024, time.February, 29}},
		{name: "not a leap year", input: "2026-02-29", wantErr: true},
		{name: "wrong separator", input: "2026/01/05", wantErr: true},
		{name: "missing padding", input: "2026-1-5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "with time", input: "2026-01-05T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	tests := []struct {
		name string
		from string
		days int
		want string
	}{
		{name: "next day", from: "2026-01-05", days: 1, want: "2026-01-06"},
		{name: "month boundary", from: "2026-01-31", days: 1, want: "2026-02-01"},
		{name: "year boundary backward", from: "2026-01-01", days: -1, want: "2025-12-31"},
		{name: "leap day", from: "2024-02-28", days: 1, want: "2024-02-29"},
		{name: "across DST change", from: "2026-03-28", days: 2, want: "2026-03-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := MustParseDate(tt.from)
			got := from.AddDays(tt.days)
			if got.String() != tt.want {
				t.Errorf("%s.AddDays(%d) = %s, want %s", tt.from, tt.days, got, tt.want)
			}
			if from.DaysUntil(got) != tt.days {
				t.Errorf("DaysUntil = %d, want %d", from.DaysUntil(got), tt.days)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	a := MustParseDate("2026-01-09")
	b := MustParseDate("2026-01-12")

	if !a.Before(b) || b.Before(a) {
		t.Error("Before() ordering is wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() ordering is wrong")
	}
	if a.AddDays(1).Equal(b) {
		t.Error("2026-01-10 should not equal 2026-01-12")
	}
	if !a.AddDays(3).Equal(b) {
		t.Error("2026-01-09 + 3 should equal 2026-01-12")
	}
}

func TestDateRange(t *testing.T) {
	days := DateRange(MustParseDate("2026-01-30"), MustParseDate("2026-02-02"))
	want := []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}
	if len(days) != len(want) {
		t.Fatalf("DateRange length = %d, want %d", len(days), len(want))
	}
	for i, d := range days {
		if d.String() != want[i] {
			t.Errorf("DateRange[%d] = %s, want %s", i, d, want[i])
		}
	}

	if got := DateRange(MustParseDate("2026-02-02"), MustParseDate("2026-01-30")); len(got) != 0 {
		t.Errorf("reversed range should be empty, got %v", got)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(wrapper{Date: MustParseDate("2026-01-23")})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"date":"2026-01-23"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"date":"2026-13-01"}`), &w); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-01-05"); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if d.String() != "2026-01-05" {
		t.Errorf("Scan(string) = %s", d)
	}

	if err := d.Scan(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) failed: %v", err)
	}
	if d.String() != "2026-01-06" {
		t.Errorf("Scan(time.Time) = %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestCompletionRatio(t *testing.T) {
	e := DailyEntry{Value: 6}
	if got := e.CompletionRatio(4); got != 1.5 {
		t.Errorf("CompletionRatio(4) = %v, want 1.5 (uncapped)", got)
	}
	if got := e.CompletionRatio(0); got != 0 {
		t.Errorf("CompletionRatio(0) = %v, want 0", got)
	}
	if got := e.CompletionRatio(-2); got != 0 {
		t.Errorf("CompletionRatio(-2) = %v, want 0", got)
	}
}

func TestTaskProgressCumulativeRatio(t *testing.T) {
	total := 3.5
	p := TaskProgress{
		Task:            TaskDefinition{Benchmark: 10, IsCumulative: true},
		CumulativeTotal: &total,
	}
	ratio, ok := p.CumulativeRatio()
	if !ok || ratio != 0.35 {
		t.Errorf("CumulativeRatio() = %v, %v; want 0.35, true", ratio, ok)
	}

	p.Task.Benchmark = 0
	if _, ok := p.CumulativeRatio(); ok {
		t.Error("CumulativeRatio() should be absent for a zero benchmark")
	}

	p.Task = TaskDefinition{Benchmark: 10}
	if _, ok := p.CumulativeRatio(); ok {
		t.Error("CumulativeRatio() should be absent for non-cumulative tasks")
	}
}
