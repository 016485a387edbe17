package lists

import (
	"encoding/json"
	"testing"
)

func intPtr(v int) *int {
	return &v
}

func sum(counts []int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func detail(quantity int, points *int, assembly AssemblyStatus, painting PaintingStatus) ItemDetail {
	return ItemDetail{
		ListItem: ListItem{
			Quantity:       quantity,
			AssemblyStatus: assembly,
			PaintingStatus: painting,
		},
		PointsValue: points,
	}
}

func TestSummarizeScenario(t *testing.T) {
	items := []ItemDetail{
		detail(10, intPtr(100), AssemblyAssembled, PaintingFinished),
		detail(5, intPtr(80), AssemblyNotStarted, PaintingUnpainted),
	}

	stats := Summarize(items)

	if stats.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", stats.TotalItems)
	}
	if stats.TotalPoints != 1400 {
		t.Fatalf("expected 1400 points, got %d", stats.TotalPoints)
	}
	if stats.AssemblyProgress != (AssemblyProgress{5, 0, 10}) {
		t.Fatalf("unexpected assembly progress %v", stats.AssemblyProgress)
	}
	if stats.PaintingProgress != (PaintingProgress{5, 0, 0, 0, 10}) {
		t.Fatalf("unexpected painting progress %v", stats.PaintingProgress)
	}
}

func TestSummarizeMissingPointsCountAsZero(t *testing.T) {
	items := []ItemDetail{
		detail(3, nil, AssemblyInProgress, PaintingPrimed),
		detail(2, intPtr(25), AssemblyInProgress, PaintingDetailed),
	}

	stats := Summarize(items)

	if stats.TotalPoints != 50 {
		t.Fatalf("expected 50 points, got %d", stats.TotalPoints)
	}
	assembled, painted := sum(stats.AssemblyProgress[:]), sum(stats.PaintingProgress[:])
	if assembled != 5 || painted != 5 {
		t.Fatalf("histograms must sum to total quantity, got %d and %d", assembled, painted)
	}
	if stats.AssemblyProgress[AssemblyInProgress] != 5 {
		t.Fatalf("expected 5 in progress, got %d", stats.AssemblyProgress[AssemblyInProgress])
	}
}

func TestSummarizeLargestAcceptedValues(t *testing.T) {
	items := make([]ItemDetail, 0, 50)
	for i := 0; i < cap(items); i++ {
		items = append(items, detail(MaxItemQuantity, intPtr(100000), AssemblyAssembled, PaintingFinished))
	}

	stats := Summarize(items)

	if want := 50 * MaxItemQuantity * 100000; stats.TotalPoints != want {
		t.Fatalf("expected %d points, got %d", want, stats.TotalPoints)
	}
	if stats.AssemblyProgress[AssemblyAssembled] != 50*MaxItemQuantity {
		t.Fatalf("unexpected assembled count %d", stats.AssemblyProgress[AssemblyAssembled])
	}
	if sum(stats.PaintingProgress[:]) != 50*MaxItemQuantity {
		t.Fatalf("histograms must sum to total quantity, got %d", sum(stats.PaintingProgress[:]))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)
	if stats != (Statistics{}) {
		t.Fatalf("expected zero statistics, got %+v", stats)
	}
}

func TestStatisticsJSONHasEveryKey(t *testing.T) {
	raw, err := json.Marshal(Summarize(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"totalItems":0,"totalPoints":0,` +
		`"assemblyProgress":{"Not Started":0,"In Progress":0,"Assembled":0},` +
		`"paintingProgress":{"Unpainted":0,"Primed":0,"Base Coated":0,"Detailed":0,"Finished":0}}`
	if string(raw) != want {
		t.Fatalf("unexpected json\n got: %s\nwant: %s", raw, want)
	}
}
