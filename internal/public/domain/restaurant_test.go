package domain

import (
	"errors"
	"testing"
)

func TestMergeGloveInfoIsLeftJoin(t *testing.T) {
	rating := 4.5
	restaurants := []Restaurant{
		{PlaceID: "A", Name: "Deli", FormattedAddress: "1 Main St", Rating: &rating},
		{PlaceID: "C", Name: "Pizza", FormattedAddress: "2 Main St"},
	}
	infos := AggregateGloveInfo([]Submission{
		report("1", "A", GloveNitrile, at(1)),
		report("2", "B", GloveLatex, at(1)),
	})

	merged := MergeGloveInfo(restaurants, infos)
	if len(merged) != 2 {
		t.Fatalf("expected 2 restaurants, got %d", len(merged))
	}
	if merged[0].PlaceID != "A" || merged[0].GloveInfo == nil {
		t.Fatalf("expected glove info attached to A: %+v", merged[0])
	}
	if merged[0].GloveInfo.LatestGloveType != GloveNitrile {
		t.Fatalf("unexpected A info: %+v", merged[0].GloveInfo)
	}
	if merged[0].Rating == nil || *merged[0].Rating != 4.5 {
		t.Fatalf("restaurant fields not preserved: %+v", merged[0].Restaurant)
	}
	if merged[1].PlaceID != "C" || merged[1].GloveInfo != nil {
		t.Fatalf("expected C without reports: %+v", merged[1])
	}
}

func TestReportedRestaurantsUsesLatestSnapshot(t *testing.T) {
	older := report("1", "A", GloveLatex, at(1))
	older.RestaurantName = "Old Name"
	newer := report("2", "A", GloveVinyl, at(5))
	newer.RestaurantName = "New Name"
	newer.Address = "New Address"
	other := report("3", "B", GloveNone, at(3))

	reported := ReportedRestaurants([]Submission{older, other, newer})
	if len(reported) != 2 {
		t.Fatalf("expected 2 reported restaurants, got %d", len(reported))
	}
	first := reported[0]
	if first.PlaceID != "A" || first.Name != "New Name" || first.FormattedAddress != "New Address" {
		t.Fatalf("unexpected first restaurant: %+v", first.Restaurant)
	}
	if first.Rating != nil {
		t.Fatalf("reported restaurants carry no rating")
	}
	if first.GloveInfo == nil || first.GloveInfo.SubmissionCount != 2 {
		t.Fatalf("unexpected first info: %+v", first.GloveInfo)
	}
	if reported[1].PlaceID != "B" {
		t.Fatalf("expected B second, got %s", reported[1].PlaceID)
	}
}

func TestExcludeLatestKeepsUnreported(t *testing.T) {
	infos := AggregateGloveInfo([]Submission{
		report("1", "A", GloveNitrile, at(1)),
		report("2", "A", GloveLatex, at(2)),
		report("3", "B", GloveLatex, at(2)),
		report("4", "B", GloveVinyl, at(3)),
	})
	merged := MergeGloveInfo([]Restaurant{{PlaceID: "A"}, {PlaceID: "B"}, {PlaceID: "C"}}, infos)

	kept := ExcludeLatest(merged, GloveLatex)
	if len(kept) != 2 || kept[0].PlaceID != "B" || kept[1].PlaceID != "C" {
		t.Fatalf("unexpected filter result: %+v", kept)
	}
}

func TestParseGloveType(t *testing.T) {
	for _, raw := range []string{"vinyl", "nitrile", "latex", "none", " latex "} {
		if _, err := ParseGloveType(raw); err != nil {
			t.Fatalf("ParseGloveType(%q): %v", raw, err)
		}
	}
	for _, raw := range []string{"", "Latex", "rubber", "nitrile,latex"} {
		_, err := ParseGloveType(raw)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ParseGloveType(%q) = %v, want ValidationError", raw, err)
		}
	}
	if GloveType("rubber").Valid() {
		t.Fatalf("converted value outside the set must not be valid")
	}
}
