package analytics

import "github.com/gojkop/mindpick/pkg/models"

// The Xano workspace stores some timestamps in epoch seconds and some in
// epoch milliseconds, depending on which endpoint wrote the row. Any value
// above the epoch-seconds encoding of year 2100 cannot be a plausible
// seconds timestamp, so it is read as milliseconds. A seconds value close
// to the cutoff stays untouched, which keeps normalization idempotent.
const msCutoff int64 = 4102444800

// NormalizeTimestamp resolves the unit ambiguity of one epoch value.
// Zero passes through unchanged; callers treat it as absent, never as
// epoch zero.
func NormalizeTimestamp(t int64) int64 {
	if t > msCutoff {
		return t / 1000
	}
	return t
}

// NormalizeQuestions returns a copy of the input with every timestamp
// field in epoch seconds. The input is never mutated.
func NormalizeQuestions(questions []models.QuestionRecord) []models.QuestionRecord {
	out := make([]models.QuestionRecord, len(questions))
	for i, q := range questions {
		q.CreatedAt = NormalizeTimestamp(q.CreatedAt)
		if q.AnsweredAt != nil {
			v := NormalizeTimestamp(*q.AnsweredAt)
			q.AnsweredAt = &v
		}
		out[i] = q
	}
	return out
}

// NormalizeAnswers returns a copy of the input with every timestamp field
// in epoch seconds.
func NormalizeAnswers(answers []models.AnswerRecord) []models.AnswerRecord {
	out := make([]models.AnswerRecord, len(answers))
	for i, a := range answers {
		a.CreatedAt = NormalizeTimestamp(a.CreatedAt)
		if a.FeedbackAt != nil {
			v := NormalizeTimestamp(*a.FeedbackAt)
			a.FeedbackAt = &v
		}
		out[i] = a
	}
	return out
}
