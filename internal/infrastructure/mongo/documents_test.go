package mongo

import (
	"testing"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSubmissionDocumentTruncatesToMillis(t *testing.T) {
	created := time.Date(2024, 6, 1, 10, 0, 0, 123456789, time.UTC)
	submission := &domain.Submission{
		ID:             "id-1",
		PlaceID:        "place-1",
		RestaurantName: "Deli",
		Address:        "1 Main St",
		GloveType:      domain.GloveNitrile,
		SubmittedBy:    domain.AnonymousSubmitter,
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	doc := mapDomainSubmissionToDocument(submission)
	if doc.GloveType != "nitrile" {
		t.Fatalf("glove type = %q", doc.GloveType)
	}
	if doc.CreatedAt.Nanosecond() != 123000000 {
		t.Fatalf("createdAt not truncated to millis: %v", doc.CreatedAt)
	}

	back := mapSubmissionDocument(doc)
	if back.ID != submission.ID || back.PlaceID != submission.PlaceID || back.GloveType != submission.GloveType {
		t.Fatalf("mapping lost fields: %+v", back)
	}
}

func TestSubmissionValidatorRestrictsGloveTypes(t *testing.T) {
	schema, ok := submissionValidator()["$jsonSchema"].(bson.M)
	if !ok {
		t.Fatalf("missing $jsonSchema")
	}
	properties := schema["properties"].(bson.M)
	glove := properties["gloveType"].(bson.M)
	allowed, ok := glove["enum"].([]string)
	if !ok {
		t.Fatalf("gloveType enum missing: %#v", glove)
	}
	want := map[string]bool{"vinyl": true, "nitrile": true, "latex": true, "none": true}
	if len(allowed) != len(want) {
		t.Fatalf("unexpected enum: %v", allowed)
	}
	for _, v := range allowed {
		if !want[v] {
			t.Fatalf("unexpected glove type %q in validator", v)
		}
	}
}
