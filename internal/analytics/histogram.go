package analytics

import (
	"math"

	"github.com/gojkop/mindpick/pkg/models"
)

// responseBuckets defines the half-open [min, max) ranges of the response
// time histogram, in hours. A value exactly on a boundary belongs to the
// higher bucket.
var responseBuckets = []struct {
	label    string
	min, max float64
}{
	{"0-12h", 0, 12},
	{"12-24h", 12, 24},
	{"24-48h", 24, 48},
	{"48-60h", 48, 60},
	{"60-72h", 60, 72},
	{"72h+", 72, math.Inf(1)},
}

// BuildResponseTimeHistogram buckets every answered question by its
// response time. Unanswered questions are excluded; every answered
// question lands in exactly one bucket. The bucket list is always present,
// with zero counts when the input is empty.
func BuildResponseTimeHistogram(questions []models.QuestionRecord) models.ResponseTimeHistogram {
	h := models.ResponseTimeHistogram{
		Buckets: make([]models.Bucket, len(responseBuckets)),
	}
	for i, b := range responseBuckets {
		h.Buckets[i] = models.Bucket{Label: b.label}
	}

	for i := range questions {
		q := &questions[i]
		if q.CreatedAt <= 0 || !q.Answered() {
			continue
		}
		hours := float64(*q.AnsweredAt-q.CreatedAt) / 3600
		for j, b := range responseBuckets {
			if hours >= b.min && hours < b.max {
				h.Buckets[j].Count++
				h.Total++
				break
			}
		}
	}

	return h
}
