package optimizer

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func TestPathOrderOptimizerPicksNearestFirst(t *testing.T) {
	near := data.Path{data.NewMicroPoint(10, 0)}
	far := data.Path{data.NewMicroPoint(1000, 0)}

	ordered, _ := PathOrderOptimizer{}.Order(data.NewMicroPoint(0, 0), data.Paths{far, near})

	if len(ordered) != 2 {
		t.Fatalf("expected 2 ordered polygons, got %d", len(ordered))
	}
	if ordered[0].Path[0].X() != 10 {
		t.Errorf("expected the nearer polygon to be ordered first, got start X=%d", ordered[0].Path[0].X())
	}
}

func TestPathOrderOptimizerChoosesNearestVertex(t *testing.T) {
	square := data.Path{
		data.NewMicroPoint(1000, 1000),
		data.NewMicroPoint(2000, 1000),
		data.NewMicroPoint(2000, 2000),
		data.NewMicroPoint(1000, 2000),
	}

	ordered, _ := PathOrderOptimizer{}.Order(data.NewMicroPoint(900, 900), data.Paths{square})

	if ordered[0].StartIndex != 0 {
		t.Errorf("expected the vertex closest to (900,900) to be index 0, got %d", ordered[0].StartIndex)
	}
}

func TestPathOrderOptimizerReturnsEndPosition(t *testing.T) {
	poly := data.Path{data.NewMicroPoint(500, 0)}
	_, end := PathOrderOptimizer{}.Order(data.NewMicroPoint(0, 0), data.Paths{poly})

	if end != data.NewMicroPoint(500, 0) {
		t.Errorf("expected the optimizer to end at the chosen start vertex, got %v", end)
	}
}

func TestPathOrderOptimizerSkipsEmptyPolygons(t *testing.T) {
	ordered, _ := PathOrderOptimizer{}.Order(data.NewMicroPoint(0, 0), data.Paths{nil, {data.NewMicroPoint(10, 10)}})
	if len(ordered) != 1 {
		t.Fatalf("expected empty polygons to be skipped, got %d ordered", len(ordered))
	}
}
