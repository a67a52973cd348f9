package analysis

import (
	"testing"
	"time"

	"github.com/synsight/synsight/internal/models"
)

func TestBucketByHour(t *testing.T) {
	at := func(hour int) models.Post {
		return models.Post{CreatedAt: time.Date(2026, 3, 14, hour, 30, 0, 0, time.Local)}
	}

	posts := []models.Post{at(9), at(9), at(14), at(23), {}}
	buckets := BucketByHour(posts)

	if len(buckets) != 24 {
		t.Fatalf("got %d buckets, want 24", len(buckets))
	}
	for h, b := range buckets {
		if b.Hour != h {
			t.Fatalf("bucket %d labeled hour %d", h, b.Hour)
		}
	}
	if buckets[9].Volume != 2 || buckets[14].Volume != 1 || buckets[23].Volume != 1 {
		t.Fatalf("volumes = 9h:%d 14h:%d 23h:%d", buckets[9].Volume, buckets[14].Volume, buckets[23].Volume)
	}

	total := 0
	for _, b := range buckets {
		total += b.Volume
	}
	if total != 4 {
		t.Fatalf("total volume %d, want 4 (zero timestamp skipped)", total)
	}
}

func TestBucketByHourEmpty(t *testing.T) {
	buckets := BucketByHour(nil)
	if len(buckets) != 24 {
		t.Fatalf("got %d buckets, want 24", len(buckets))
	}
	for _, b := range buckets {
		if b.Volume != 0 {
			t.Fatalf("hour %d volume %d, want 0", b.Hour, b.Volume)
		}
	}
}
