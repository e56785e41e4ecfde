package ranking

import (
	"math"
	"testing"

	"github.com/hyperjump/homematch/internal/models"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  Level
	}{
		{"negative", -0.5, LevelEmpty},
		{"zero", 0, LevelEmpty},
		{"tiny positive", 0.0001, LevelMinimal},
		{"just below 0.2", 0.1999, LevelMinimal},
		{"exactly 0.2", 0.2, LevelSlight},
		{"exactly 0.4", 0.4, LevelModerate},
		{"exactly 0.6", 0.6, LevelStrong},
		{"just below 0.8", 0.7999, LevelStrong},
		{"exactly 0.8", 0.8, LevelExcellent},
		{"exactly 1", 1.0, LevelExcellent},
		{"above 1", 1.0001, LevelUndefined},
		{"NaN", math.NaN(), LevelUndefined},
		{"positive infinity", math.Inf(1), LevelUndefined},
		{"negative infinity", math.Inf(-1), LevelEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.score); got != tt.want {
				t.Errorf("Bucket(%v) = %d, want %d", tt.score, got, tt.want)
			}
		})
	}
}

func TestBucket_Monotonic(t *testing.T) {
	prev := Bucket(0)
	for i := 1; i <= 1000; i++ {
		x := float64(i) / 1000
		got := Bucket(x)
		if got < prev {
			t.Fatalf("Bucket not monotonic at %v: %d after %d", x, got, prev)
		}
		prev = got
	}
	if prev != LevelExcellent {
		t.Errorf("Bucket(1) = %d, want %d", prev, LevelExcellent)
	}
}

func TestLevel_Symbol(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelEmpty, "○○○○○"},
		{LevelMinimal, "●○○○○"},
		{LevelSlight, "●●○○○"},
		{LevelModerate, "●●●○○"},
		{LevelStrong, "●●●●○"},
		{LevelExcellent, "●●●●●"},
		{LevelUndefined, "None"},
		{Level(9), "None"},
	}
	for _, tt := range tests {
		if got := tt.level.Symbol(); got != tt.want {
			t.Errorf("Level(%d).Symbol() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_Bucket(t *testing.T) {
	b := LevelUndefined.Bucket()
	if b.Level != -1 || b.Symbol != "None" {
		t.Errorf("undefined bucket = %+v", b)
	}
	b = LevelStrong.Bucket()
	if b.Level != 4 || b.Symbol != "●●●●○" {
		t.Errorf("strong bucket = %+v", b)
	}
}

func TestBucketListing_MissingIsUndefined(t *testing.T) {
	l := &models.Listing{Scores: map[models.Feature]float64{models.FeatureFireplace: 0.45}}
	if got := BucketListing(l, models.FeatureFireplace); got != LevelModerate {
		t.Errorf("got %d, want %d", got, LevelModerate)
	}
	if got := BucketListing(l, models.FeatureNaturalLight); got != LevelUndefined {
		t.Errorf("missing score: got %d, want undefined", got)
	}
}

func TestLegend(t *testing.T) {
	want := "●○○○○: Minimal | ●●○○○: Slight | ●●●○○: Moderate | ●●●●○: Strong | ●●●●●: Excellent"
	if got := Legend(); got != want {
		t.Errorf("Legend() = %q, want %q", got, want)
	}
}
