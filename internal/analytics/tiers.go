package analytics

import "github.com/gojkop/mindpick/pkg/models"

// deepDive reports whether a question belongs to the deep-dive tier.
// Unset and unrecognized tier values fall back to quick consult: most
// records predate the tier field.
func deepDive(tier string) bool {
	return tier == "tier2" || tier == "deep_dive"
}

// BuildTierSplit computes mean response time independently for quick
// consult and deep dive questions. Only answered questions with a valid
// creation timestamp participate.
func BuildTierSplit(questions []models.QuestionRecord) models.TierSplit {
	var quickSum, deepSum float64
	var quickCount, deepCount int

	for i := range questions {
		q := &questions[i]
		if q.CreatedAt <= 0 || !q.Answered() {
			continue
		}
		hours := float64(*q.AnsweredAt-q.CreatedAt) / 3600
		if deepDive(q.Tier) {
			deepSum += hours
			deepCount++
		} else {
			quickSum += hours
			quickCount++
		}
	}

	split := models.TierSplit{
		Quick:    models.TierStats{Answered: quickCount},
		DeepDive: models.TierStats{Answered: deepCount},
	}
	if quickCount > 0 {
		split.Quick.AvgHours = quickSum / float64(quickCount)
		split.Quick.AvgHoursLabel = FormatHours(split.Quick.AvgHours)
	}
	if deepCount > 0 {
		split.DeepDive.AvgHours = deepSum / float64(deepCount)
		split.DeepDive.AvgHoursLabel = FormatHours(split.DeepDive.AvgHours)
	}

	return split
}
