package analytics

import "github.com/gojkop/mindpick/pkg/models"

// BuildRatingDistribution counts answers per star value, 5 down to 1, with
// each star's share of the valid ratings. Ratings outside [1,5] and
// answers without a rating are excluded.
func BuildRatingDistribution(answers []models.AnswerRecord) models.RatingDistribution {
	var counts [6]int // index by star value, 0 unused
	var sum, total int

	for i := range answers {
		r := answers[i].Rating
		if r == nil || *r < 1 || *r > 5 {
			continue
		}
		counts[*r]++
		sum += *r
		total++
	}

	d := models.RatingDistribution{
		TotalRatings: total,
		Distribution: make([]models.StarBucket, 0, 5),
	}
	if total > 0 {
		d.AvgRating = float64(sum) / float64(total)
	}
	for stars := 5; stars >= 1; stars-- {
		b := models.StarBucket{Stars: stars, Count: counts[stars]}
		if total > 0 {
			b.Percent = float64(counts[stars]) / float64(total) * 100
		}
		d.Distribution = append(d.Distribution, b)
	}

	return d
}
