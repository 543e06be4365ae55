package analytics

import (
	"time"

	"github.com/gojkop/mindpick/internal/sla"
	"github.com/gojkop/mindpick/pkg/models"
)

// Pricing states that keep a question out of the pending count. The set is
// open: the upstream negotiation flow can grow new states, so this is a
// lookup table rather than a closed enum.
var excludedPricingStatuses = map[string]bool{
	"offer_pending":  true,
	"offer_declined": true,
}

// aggregateUrgentWindow is the remaining-time window in which a pending
// question is counted as urgent on the dashboard KPI tile. The live
// countdown uses the finer tiers in the sla package instead.
const aggregateUrgentWindow = 12 * time.Hour

// Pending reports whether a question is awaiting an answer and should
// count toward the pending KPI: paid, unanswered, not mid price
// negotiation, and not hidden. The four conditions are independent.
func Pending(q *models.QuestionRecord) bool {
	if q.Status != "paid" {
		return false
	}
	if q.Answered() {
		return false
	}
	if excludedPricingStatuses[q.PricingStatus] {
		return false
	}
	if q.Hidden {
		return false
	}
	return true
}

// Urgent reports whether a pending question is inside the urgent window:
// it tracks an SLA and its deadline is less than 12 hours away but not yet
// past. Questions without a positive SLA snapshot are never urgent.
func Urgent(q *models.QuestionRecord, now time.Time) bool {
	if !Pending(q) {
		return false
	}
	if q.SLAHours == nil || *q.SLAHours <= 0 {
		return false
	}
	remaining := sla.Remaining(q.CreatedAt, *q.SLAHours, now)
	return remaining > 0 && remaining < aggregateUrgentWindow
}

// Aggregate computes the dashboard KPI set in one pass over the question
// slice and one pass over the answer slice. Questions and answers are
// semantically distinct collections (ratings do not join back onto
// questions), so the two passes stay separate. Inputs must already be
// normalized; they are never mutated.
func Aggregate(questions []models.QuestionRecord, answers []models.AnswerRecord, now time.Time) models.Metrics {
	var m models.Metrics
	if len(questions) == 0 {
		// keep averages at a defined zero instead of propagating NaN
		return m
	}

	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Unix()
	prevStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0).Unix()
	nowSec := now.Unix()

	var (
		thisMonthCents int64
		prevMonthCents int64
		responseSum    float64
		responseCount  int
	)

	for i := range questions {
		q := &questions[i]

		if q.Terminal() && q.CreatedAt > 0 {
			switch {
			case q.CreatedAt >= monthStart && q.CreatedAt < nowSec:
				thisMonthCents += q.PriceCents
			case q.CreatedAt >= prevStart && q.CreatedAt < monthStart:
				prevMonthCents += q.PriceCents
			}
		}

		if q.CreatedAt > 0 && q.Answered() {
			responseSum += float64(*q.AnsweredAt-q.CreatedAt) / 3600
			responseCount++
		}

		if Pending(q) {
			m.PendingCount++
			if Urgent(q, now) {
				m.UrgentCount++
			}
		}
	}

	m.ThisMonthRevenue = float64(thisMonthCents) / 100
	prevMonthRevenue := float64(prevMonthCents) / 100
	if prevMonthRevenue > 0 {
		m.RevenueChange = (m.ThisMonthRevenue - prevMonthRevenue) / prevMonthRevenue * 100
	}
	if responseCount > 0 {
		m.AvgResponseTime = responseSum / float64(responseCount)
	}

	var ratingSum, ratingCount int
	for i := range answers {
		r := answers[i].Rating
		if r == nil || *r < 1 || *r > 5 {
			// out-of-range ratings are excluded, never clamped
			continue
		}
		ratingSum += *r
		ratingCount++
	}
	if ratingCount > 0 {
		m.AvgRating = float64(ratingSum) / float64(ratingCount)
	}

	return m
}
