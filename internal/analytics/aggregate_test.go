package analytics_test

import (
	"testing"
	"time"

	"github.com/gojkop/mindpick/internal/analytics"
	"github.com/gojkop/mindpick/pkg/models"
)

// fixed reference instant mid-month so that "23 hours ago" and "one month
// ago" stay inside predictable calendar windows
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func i64(v int64) *int64       { return &v }
func f64(v float64) *float64   { return &v }
func intp(v int) *int          { return &v }
func sec(t time.Time) int64    { return t.Unix() }
func ago(d time.Duration) int64 { return testNow.Add(-d).Unix() }

func TestAggregate_EmptyInput(t *testing.T) {
	m := analytics.Aggregate(nil, nil, testNow)
	if m != (models.Metrics{}) {
		t.Fatalf("expected all-zero metrics for empty input, got %+v", m)
	}
}

func TestAggregate_PendingNotUrgent(t *testing.T) {
	// scenario: fresh paid question with a 24h SLA; pending but a full
	// day from its deadline, and not terminal so no revenue
	qs := []models.QuestionRecord{{
		ID:         1,
		CreatedAt:  sec(testNow),
		Status:     "paid",
		PriceCents: 5000,
		SLAHours:   f64(24),
	}}

	m := analytics.Aggregate(qs, nil, testNow)
	if m.PendingCount != 1 {
		t.Fatalf("expected pendingCount=1, got %d", m.PendingCount)
	}
	if m.UrgentCount != 0 {
		t.Fatalf("expected urgentCount=0, got %d", m.UrgentCount)
	}
	if m.ThisMonthRevenue != 0 {
		t.Fatalf("expected no revenue for non-terminal question, got %v", m.ThisMonthRevenue)
	}
}

func TestAggregate_UrgentOneHourLeft(t *testing.T) {
	qs := []models.QuestionRecord{{
		ID:         1,
		CreatedAt:  ago(23 * time.Hour),
		Status:     "paid",
		PriceCents: 5000,
		SLAHours:   f64(24),
	}}

	m := analytics.Aggregate(qs, nil, testNow)
	if m.PendingCount != 1 || m.UrgentCount != 1 {
		t.Fatalf("expected pending=1 urgent=1, got pending=%d urgent=%d", m.PendingCount, m.UrgentCount)
	}
}

func TestAggregate_OverdueNotUrgent(t *testing.T) {
	qs := []models.QuestionRecord{{
		ID:        1,
		CreatedAt: ago(30 * time.Hour),
		Status:    "paid",
		SLAHours:  f64(24),
	}}

	m := analytics.Aggregate(qs, nil, testNow)
	if m.PendingCount != 1 {
		t.Fatalf("expected overdue question to stay pending, got %d", m.PendingCount)
	}
	if m.UrgentCount != 0 {
		t.Fatalf("expected past-deadline question not urgent, got %d", m.UrgentCount)
	}
}

func TestAggregate_PendingExclusions(t *testing.T) {
	cases := []struct {
		name string
		q    models.QuestionRecord
	}{
		{"hidden", models.QuestionRecord{Status: "paid", CreatedAt: sec(testNow), Hidden: true}},
		{"offer pending", models.QuestionRecord{Status: "paid", CreatedAt: sec(testNow), PricingStatus: "offer_pending"}},
		{"offer declined", models.QuestionRecord{Status: "paid", CreatedAt: sec(testNow), PricingStatus: "offer_declined"}},
		{"answered", models.QuestionRecord{Status: "paid", CreatedAt: ago(time.Hour), AnsweredAt: i64(sec(testNow))}},
		{"closed", models.QuestionRecord{Status: "closed", CreatedAt: sec(testNow)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := analytics.Aggregate([]models.QuestionRecord{tc.q}, nil, testNow)
			if m.PendingCount != 0 {
				t.Fatalf("expected question excluded from pending, got %d", m.PendingCount)
			}
		})
	}
}

func TestAggregate_NoSLANeverUrgent(t *testing.T) {
	qs := []models.QuestionRecord{
		{ID: 1, CreatedAt: ago(23 * time.Hour), Status: "paid"},
		{ID: 2, CreatedAt: ago(23 * time.Hour), Status: "paid", SLAHours: f64(0)},
	}
	m := analytics.Aggregate(qs, nil, testNow)
	if m.PendingCount != 2 {
		t.Fatalf("expected both pending, got %d", m.PendingCount)
	}
	if m.UrgentCount != 0 {
		t.Fatalf("questions without SLA tracked must not be urgent, got %d", m.UrgentCount)
	}
}

func TestAggregate_Revenue(t *testing.T) {
	prevMonth := testNow.AddDate(0, -1, 0)
	qs := []models.QuestionRecord{
		// this month, closed
		{ID: 1, CreatedAt: ago(48 * time.Hour), Status: "closed", PriceCents: 10000},
		// this month, answered (terminal without closed status)
		{ID: 2, CreatedAt: ago(72 * time.Hour), AnsweredAt: i64(ago(24 * time.Hour)), Status: "paid", PriceCents: 2500},
		// this month, still open: no revenue
		{ID: 3, CreatedAt: ago(time.Hour), Status: "paid", PriceCents: 99900},
		// previous month, closed
		{ID: 4, CreatedAt: sec(prevMonth), Status: "closed", PriceCents: 10000},
	}

	m := analytics.Aggregate(qs, nil, testNow)
	if m.ThisMonthRevenue != 125.0 {
		t.Fatalf("expected thisMonthRevenue=125.0, got %v", m.ThisMonthRevenue)
	}
	if m.RevenueChange != 25.0 {
		t.Fatalf("expected revenueChange=25%%, got %v", m.RevenueChange)
	}
}

func TestAggregate_RevenueMonotonicity(t *testing.T) {
	base := []models.QuestionRecord{
		{ID: 1, CreatedAt: ago(48 * time.Hour), Status: "closed", PriceCents: 10000},
	}
	before := analytics.Aggregate(base, nil, testNow)

	extra := append(append([]models.QuestionRecord{}, base...), models.QuestionRecord{
		ID: 2, CreatedAt: ago(24 * time.Hour), Status: "closed", PriceCents: 3300,
	})
	after := analytics.Aggregate(extra, nil, testNow)

	if after.ThisMonthRevenue-before.ThisMonthRevenue != 33.0 {
		t.Fatalf("expected revenue to increase by 33.0, got %v -> %v", before.ThisMonthRevenue, after.ThisMonthRevenue)
	}
}

func TestAggregate_RevenueChangeZeroWhenNoPrevMonth(t *testing.T) {
	qs := []models.QuestionRecord{
		{ID: 1, CreatedAt: ago(time.Hour), Status: "closed", PriceCents: 10000},
	}
	m := analytics.Aggregate(qs, nil, testNow)
	if m.ThisMonthRevenue != 100.0 {
		t.Fatalf("expected thisMonthRevenue=100.0, got %v", m.ThisMonthRevenue)
	}
	if m.RevenueChange != 0 {
		t.Fatalf("expected revenueChange=0 with empty previous month, got %v", m.RevenueChange)
	}
}

func TestAggregate_AvgResponseTime(t *testing.T) {
	created := ago(10 * time.Hour)
	qs := []models.QuestionRecord{
		// answered 5h after creation
		{ID: 1, CreatedAt: created, AnsweredAt: i64(created + 5*3600), Status: "closed"},
		// unanswered: excluded, not treated as zero
		{ID: 2, CreatedAt: ago(time.Hour), Status: "paid"},
	}
	m := analytics.Aggregate(qs, nil, testNow)
	if m.AvgResponseTime != 5.0 {
		t.Fatalf("expected avgResponseTime=5.0, got %v", m.AvgResponseTime)
	}
}

func TestAggregate_AvgRating(t *testing.T) {
	qs := []models.QuestionRecord{{ID: 1, CreatedAt: sec(testNow), Status: "paid"}}
	answers := []models.AnswerRecord{
		{ID: 1, QuestionID: 1, Rating: intp(4)},
		{ID: 2, QuestionID: 2, Rating: intp(2)},
		{ID: 3, QuestionID: 3},            // no rating
		{ID: 4, QuestionID: 4, Rating: intp(9)}, // out of range, excluded not clamped
	}
	m := analytics.Aggregate(qs, answers, testNow)
	if m.AvgRating != 3.0 {
		t.Fatalf("expected avgRating=3.0, got %v", m.AvgRating)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	// urgentCount <= pendingCount and avgRating in [0,5] over a mixed input
	qs := []models.QuestionRecord{
		{ID: 1, CreatedAt: ago(23 * time.Hour), Status: "paid", SLAHours: f64(24)},
		{ID: 2, CreatedAt: ago(2 * time.Hour), Status: "paid", SLAHours: f64(48)},
		{ID: 3, CreatedAt: ago(30 * time.Hour), Status: "paid", SLAHours: f64(24)},
		{ID: 4, CreatedAt: ago(96 * time.Hour), Status: "closed", PriceCents: 100},
	}
	answers := []models.AnswerRecord{
		{ID: 1, QuestionID: 4, Rating: intp(5)},
		{ID: 2, QuestionID: 9, Rating: intp(1)}, // references a question not in the slice
	}
	m := analytics.Aggregate(qs, answers, testNow)
	if m.PendingCount < 0 || m.UrgentCount < 0 {
		t.Fatalf("negative counts: %+v", m)
	}
	if m.UrgentCount > m.PendingCount {
		t.Fatalf("urgentCount %d exceeds pendingCount %d", m.UrgentCount, m.PendingCount)
	}
	if m.AvgRating < 0 || m.AvgRating > 5 {
		t.Fatalf("avgRating out of range: %v", m.AvgRating)
	}
}
