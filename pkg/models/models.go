package models

// Record shapes fetched from the Xano workspace. Timestamps are epoch
// values whose unit (seconds vs milliseconds) is only resolved by
// analytics.NormalizeTimestamp; nothing below that boundary should see a
// raw timestamp. Optional fields are pointers so that "absent" and "zero"
// stay distinguishable.

type QuestionRecord struct {
	ID            int64    `json:"id"`
	CreatedAt     int64    `json:"created_at"`
	AnsweredAt    *int64   `json:"answered_at,omitempty"`
	Status        string   `json:"status"`
	PriceCents    int64    `json:"price_cents"`
	SLAHours      *float64 `json:"sla_hours_snapshot,omitempty"`
	PricingStatus string   `json:"pricing_status,omitempty"`
	Hidden        bool     `json:"hidden,omitempty"`
	Tier          string   `json:"question_tier,omitempty"`
}

// Answered reports whether the question carries an answer timestamp.
// A zero answered_at means absent, never epoch zero.
func (q *QuestionRecord) Answered() bool {
	return q.AnsweredAt != nil && *q.AnsweredAt > 0
}

// Terminal reports whether the question reached a terminal state:
// explicitly closed, or answered.
func (q *QuestionRecord) Terminal() bool {
	return q.Status == "closed" || q.Answered()
}

type AnswerRecord struct {
	ID           int64  `json:"id"`
	QuestionID   int64  `json:"question_id"`
	Rating       *int   `json:"rating,omitempty"`
	FeedbackText string `json:"feedback_text,omitempty"`
	FeedbackAt   *int64 `json:"feedback_at,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// DashboardData is the combined result of the fan-out fetch against the
// upstream workspace. Both slices arrive unsorted and already normalized.
type DashboardData struct {
	Questions []QuestionRecord `json:"questions"`
	Answers   []AnswerRecord   `json:"answers"`
}

// Metrics is the scalar KPI set rendered on the expert dashboard. Every
// field is a concrete computed value, safe for direct display or export.
type Metrics struct {
	ThisMonthRevenue float64 `json:"this_month_revenue"`
	RevenueChange    float64 `json:"revenue_change"`
	AvgResponseTime  float64 `json:"avg_response_time_hours"`
	AvgRating        float64 `json:"avg_rating"`
	PendingCount     int     `json:"pending_count"`
	UrgentCount      int     `json:"urgent_count"`
}

// Bucket is one histogram slot.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent,omitempty"`
}

type ResponseTimeHistogram struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
}

// StarBucket is one row of the rating distribution, stars 5 down to 1.
type StarBucket struct {
	Stars   int     `json:"stars"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type RatingDistribution struct {
	AvgRating    float64      `json:"avg_rating"`
	TotalRatings int          `json:"total_ratings"`
	Distribution []StarBucket `json:"distribution"`
}

// TierStats holds the per-tier response time split.
type TierStats struct {
	Answered      int     `json:"answered"`
	AvgHours      float64 `json:"avg_hours"`
	AvgHoursLabel string  `json:"avg_hours_label"`
}

type TierSplit struct {
	Quick    TierStats `json:"quick"`
	DeepDive TierStats `json:"deep_dive"`
}

// Snapshot is a persisted metrics computation for one expert.
type Snapshot struct {
	ExpertID   int64   `json:"expert_id" db:"expert_id"`
	Metrics    Metrics `json:"metrics"`
	ComputedAt int64   `json:"computed_at" db:"computed_at"`
}

// Preference is one persisted UI preference entry (draft text, pinned
// questions, sidebar state). Keys are free-form, owned by the frontend.
type Preference struct {
	ExpertID int64  `json:"expert_id" db:"expert_id"`
	Key      string `json:"key" db:"key"`
	Value    string `json:"value" db:"value"`
	Updated  int64  `json:"updated" db:"updated"`
}
