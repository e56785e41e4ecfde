package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/homematch/internal/models"
)

const sampleCSV = `property_id,title,address,monthly_int,bed_number,property_platform,agent_name,link,natural_light_score,large_windows_score,high_ceiling_score,fireplace_score,no_carpet_score,wide_lenses_score,overprocessed_score,number_of_photos_overall_score,number_of_bedroom_photos_score
p1,1 bed flat,"Camden Road, London NW1",1100,1,Zoopla,Acme,https://example.com/p1,0.9,0.2,,0.0,1,0.5,0.3,1,1
p2,Room to rent,"Holloway Road, London N7",650,1,Rightmove,Beta,https://example.com/p2,nan,0.4,0.1,0.8,0,0.2,0.1,1,
p3,2 bed maisonette,"Bow, London E3","1,250",2,Zoopla,,https://example.com/p3,0.55,,,,,,,0,0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func sampleListings(t *testing.T) []*models.Listing {
	t.Helper()
	listings, err := ReadCSV(testContext(t), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	return listings
}

// assertSample checks the parsed contents of sampleCSV.
func assertSample(t *testing.T, byID map[string]*models.Listing) {
	t.Helper()
	if len(byID) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(byID))
	}

	p1 := byID["p1"]
	if p1 == nil {
		t.Fatal("p1 missing")
	}
	if p1.Address != "Camden Road, London NW1" || p1.Rent != 1100 || p1.Bedrooms != 1 || p1.Platform != "Zoopla" {
		t.Errorf("p1 = %+v", p1)
	}
	if v, ok := p1.Score(models.FeatureNaturalLight); !ok || v != 0.9 {
		t.Errorf("p1 natural light = %v, %v", v, ok)
	}
	if _, ok := p1.Score(models.FeatureHighCeiling); ok {
		t.Error("empty cell should be a missing score")
	}
	if v, ok := p1.Score(models.FeatureFireplace); !ok || v != 0 {
		t.Errorf("explicit zero should be present, got %v, %v", v, ok)
	}

	p2 := byID["p2"]
	if _, ok := p2.Score(models.FeatureNaturalLight); ok {
		t.Error("nan cell should be a missing score")
	}
	if p2.PhotosOverall != 1 || !math.IsNaN(p2.PhotosBedroom) {
		t.Errorf("p2 photo indicators = %v, %v", p2.PhotosOverall, p2.PhotosBedroom)
	}

	p3 := byID["p3"]
	if p3.Rent != 1250 || p3.Bedrooms != 2 || p3.Agent != "" {
		t.Errorf("p3 = %+v", p3)
	}
	if len(p3.Scores) != 1 {
		t.Errorf("p3 should have one score, got %v", p3.Scores)
	}
}

func index(listings []*models.Listing) map[string]*models.Listing {
	m := make(map[string]*models.Listing, len(listings))
	for _, l := range listings {
		m[l.ID] = l
	}
	return m
}
