package optimise

import (
	"testing"

	"github.com/retrotrk/nitrocc/internal/song"
)

func TestEmitRowPoolDedupesIdenticalCells(t *testing.T) {
	id := Main(song.KindDuty, 0)
	cell := song.Cell{Note: 4, Effect: song.EffectArpeggio}
	patterns := map[PatternId]*OptimisedPattern[song.Cell]{
		id: {ID: id, Cells: []AnnotatedCell[song.Cell]{
			{Cell: cell, Reachable: true},
			{Cell: cell, Reachable: true},
		}},
	}
	ordering := []OrderEntry{{ID: id, Start: 0}}

	result, err := EmitRowPool(ordering, patterns, "main")
	if err != nil {
		t.Fatalf("EmitRowPool: %v", err)
	}
	if result.Catalog.Len() != 1 {
		t.Errorf("catalog has %d entries, want 1 (both rows identical)", result.Catalog.Len())
	}
}

func TestEmitRowPoolOverflowsAt257UniqueCells(t *testing.T) {
	id := Main(song.KindDuty, 0)
	cells := make([]AnnotatedCell[song.Cell], MaxCatalogSize+1)
	for i := range cells {
		cells[i] = AnnotatedCell[song.Cell]{Cell: song.Cell{Note: uint8(i % song.NoNote), Param: uint8(i)}, Reachable: true}
	}
	patterns := map[PatternId]*OptimisedPattern[song.Cell]{
		id: {ID: id, Cells: cells},
	}
	ordering := []OrderEntry{{ID: id, Start: 0}}

	_, err := EmitRowPool(ordering, patterns, "main")
	if err == nil {
		t.Fatal("expected a catalog overflow error")
	}
	if _, ok := err.(*ErrCatalogOverflow); !ok {
		t.Errorf("error = %T, want *ErrCatalogOverflow", err)
	}
}

func TestEmitRowPoolEmptyOrdering(t *testing.T) {
	result, err := EmitRowPool[song.Cell](nil, nil, "main")
	if err != nil {
		t.Fatalf("EmitRowPool: %v", err)
	}
	if len(result.Items) != 0 || result.Catalog.Len() != 0 {
		t.Errorf("expected an empty result for an empty ordering, got %+v", result)
	}
}
