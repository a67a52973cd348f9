package analysis

import "github.com/synsight/synsight/internal/models"

// BucketByHour counts post volume per hour of day, 24 fixed buckets. Hours
// come from the execution environment's local time zone; posts with a zero
// timestamp are skipped.
func BucketByHour(posts []models.Post) []models.HourBucket {
	var hourly [24]int
	for _, p := range posts {
		if p.CreatedAt.IsZero() {
			continue
		}
		hourly[p.CreatedAt.Local().Hour()]++
	}

	buckets := make([]models.HourBucket, 24)
	for h := 0; h < 24; h++ {
		buckets[h] = models.HourBucket{Hour: h, Volume: hourly[h]}
	}
	return buckets
}
