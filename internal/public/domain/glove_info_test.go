package domain

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

func report(id, placeID string, glove GloveType, createdAt time.Time) Submission {
	return Submission{
		ID:             id,
		PlaceID:        placeID,
		RestaurantName: "Restaurant " + placeID,
		Address:        "Address " + placeID,
		GloveType:      glove,
		Notes:          "note " + id,
		SubmittedBy:    AnonymousSubmitter,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestAggregateGloveInfoScenario(t *testing.T) {
	submissions := []Submission{
		report("1", "A", GloveLatex, at(1)),
		report("2", "A", GloveNitrile, at(2)),
		report("3", "B", GloveVinyl, at(1)),
	}

	got := AggregateGloveInfo(submissions)
	if len(got) != 2 {
		t.Fatalf("expected 2 places, got %d", len(got))
	}

	a := got["A"]
	if a.LatestGloveType != GloveNitrile {
		t.Fatalf("A latest = %q, want nitrile", a.LatestGloveType)
	}
	if a.LatestNotes != "note 2" || !a.LatestSubmittedAt.Equal(at(2)) {
		t.Fatalf("A latest fields not taken from newest report: %+v", a)
	}
	if a.SubmissionCount != 2 {
		t.Fatalf("A count = %d, want 2", a.SubmissionCount)
	}
	wantA := map[GloveType]int{GloveLatex: 1, GloveNitrile: 1}
	if !reflect.DeepEqual(a.GloveTypeCounts, wantA) {
		t.Fatalf("A counts = %v, want %v", a.GloveTypeCounts, wantA)
	}

	b := got["B"]
	if b.LatestGloveType != GloveVinyl || b.SubmissionCount != 1 {
		t.Fatalf("unexpected B summary: %+v", b)
	}
	if !reflect.DeepEqual(b.GloveTypeCounts, map[GloveType]int{GloveVinyl: 1}) {
		t.Fatalf("B counts = %v", b.GloveTypeCounts)
	}
}

func TestAggregateGloveInfoEmptyInput(t *testing.T) {
	got := AggregateGloveInfo(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", got)
	}
}

func TestAggregateGloveInfoCountsSumToTotal(t *testing.T) {
	gloves := GloveTypes()
	var submissions []Submission
	for i := 0; i < 40; i++ {
		place := fmt.Sprintf("place-%d", i%7)
		submissions = append(submissions, report(fmt.Sprintf("id-%02d", i), place, gloves[i%len(gloves)], at(i*3%11)))
	}

	for placeID, info := range AggregateGloveInfo(submissions) {
		sum := 0
		for glove, n := range info.GloveTypeCounts {
			if n <= 0 {
				t.Fatalf("%s: zero entry for %q", placeID, glove)
			}
			sum += n
		}
		if sum != info.SubmissionCount {
			t.Fatalf("%s: counts sum %d != submissionCount %d", placeID, sum, info.SubmissionCount)
		}
	}
}

func TestAggregateGloveInfoLatestIsMaxCreatedAt(t *testing.T) {
	submissions := []Submission{
		report("a", "P", GloveVinyl, at(5)),
		report("b", "P", GloveLatex, at(30)),
		report("c", "P", GloveNone, at(-10)),
		report("d", "P", GloveNitrile, at(29)),
	}

	info := AggregateGloveInfo(submissions)["P"]
	if info.LatestGloveType != GloveLatex {
		t.Fatalf("latest = %q, want latex", info.LatestGloveType)
	}
	if !info.LatestSubmittedAt.Equal(at(30)) {
		t.Fatalf("latest time = %v", info.LatestSubmittedAt)
	}
}

func TestAggregateGloveInfoTieBreaksOnHighestID(t *testing.T) {
	forward := []Submission{
		report("aaa", "P", GloveVinyl, at(1)),
		report("zzz", "P", GloveLatex, at(1)),
	}
	backward := []Submission{forward[1], forward[0]}

	for _, input := range [][]Submission{forward, backward} {
		info := AggregateGloveInfo(input)["P"]
		if info.LatestGloveType != GloveLatex || info.LatestNotes != "note zzz" {
			t.Fatalf("tie not broken by highest id: %+v", info)
		}
	}
}

func TestAggregateGloveInfoIsIdempotentAndPure(t *testing.T) {
	submissions := []Submission{
		report("1", "A", GloveLatex, at(3)),
		report("2", "A", GloveLatex, at(1)),
		report("3", "B", GloveNone, at(2)),
	}
	snapshot := append([]Submission(nil), submissions...)

	first := AggregateGloveInfo(submissions)
	second := AggregateGloveInfo(submissions)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(submissions, snapshot) {
		t.Fatalf("input was mutated")
	}
}
