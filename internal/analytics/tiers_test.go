package analytics_test

import (
	"testing"
	"time"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/pkg/models"
)

func tierQuestion(tier string, hours float64) models.QuestionRecord {
	q := answeredAfter(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).Unix(), hours)
	q.Tier = tier
	return q
}

func TestBuildTierSplit(t *testing.T) {
	qs := []models.QuestionRecord{
		tierQuestion("", 2),
		tierQuestion("tier1", 4),
		tierQuestion("tier2", 30),
		tierQuestion("deep_dive", 50),
	}
	split := analytics.BuildTierSplit(qs)
	if split.Quick.Answered != 2 || split.Quick.AvgHours != 3.0 {
		t.Fatalf("quick: got %+v", split.Quick)
	}
	if split.DeepDive.Answered != 2 || split.DeepDive.AvgHours != 40.0 {
		t.Fatalf("deep dive: got %+v", split.DeepDive)
	}
	if split.Quick.AvgHoursLabel != "3.0h" {
		t.Fatalf("quick label: got %q", split.Quick.AvgHoursLabel)
	}
	if split.DeepDive.AvgHoursLabel != "1d 16h" {
		t.Fatalf("deep dive label: got %q", split.DeepDive.AvgHoursLabel)
	}
}

func TestBuildTierSplit_UnknownTierFailsOpenToQuick(t *testing.T) {
	qs := []models.QuestionRecord{tierQuestion("tier9", 2)}
	split := analytics.BuildTierSplit(qs)
	if split.Quick.Answered != 1 {
		t.Fatalf("unknown tier should count as quick, got %+v", split)
	}
	if split.DeepDive.Answered != 0 {
		t.Fatalf("unknown tier must not count as deep dive, got %+v", split)
	}
}

func TestBuildTierSplit_ExcludesUnanswered(t *testing.T) {
	qs := []models.QuestionRecord{{CreatedAt: 1700000000, Status: "paid", Tier: "tier2"}}
	split := analytics.BuildTierSplit(qs)
	if split.DeepDive.Answered != 0 || split.Quick.Answered != 0 {
		t.Fatalf("unanswered questions must be excluded, got %+v", split)
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0.75, "45m"},
		{0.5, "30m"},
		{3.2, "3.2h"},
		{23.94, "23.9h"},
		{24, "1d"},
		{29, "1d 5h"},
		{48.4, "2d"},
		// remainder rounds up to a full day and rolls over
		{71.6, "3d"},
	}
	for _, tc := range cases {
		if got := analytics.FormatHours(tc.hours); got != tc.want {
			t.Fatalf("FormatHours(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}
