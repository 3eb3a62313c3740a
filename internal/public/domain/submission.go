package domain

import (
	"fmt"
	"strings"
	"time"
)

// GloveType is the kind of glove reported in use in a kitchen.
// Values outside the closed set can only be produced by a type conversion;
// ParseGloveType is the sole validating constructor.
type GloveType string

const (
	GloveVinyl   GloveType = "vinyl"
	GloveNitrile GloveType = "nitrile"
	GloveLatex   GloveType = "latex"
	GloveNone    GloveType = "none"
)

// AnonymousSubmitter is stored when a report carries no submitter name.
const AnonymousSubmitter = "anonymous"

var gloveTypes = []GloveType{GloveVinyl, GloveNitrile, GloveLatex, GloveNone}

// GloveTypes returns the closed set of glove types in display order.
func GloveTypes() []GloveType {
	return append([]GloveType(nil), gloveTypes...)
}

// GloveTypeNames returns the glove types as plain strings.
func GloveTypeNames() []string {
	names := make([]string, 0, len(gloveTypes))
	for _, g := range gloveTypes {
		names = append(names, string(g))
	}
	return names
}

// ParseGloveType validates raw input against the closed set.
func ParseGloveType(value string) (GloveType, error) {
	candidate := GloveType(strings.TrimSpace(value))
	if candidate.Valid() {
		return candidate, nil
	}
	return "", &ValidationError{
		Field:   "gloveType",
		Message: fmt.Sprintf("gloveType must be one of: %s", strings.Join(GloveTypeNames(), ", ")),
	}
}

// Valid reports whether g is a member of the closed set.
func (g GloveType) Valid() bool {
	for _, allowed := range gloveTypes {
		if g == allowed {
			return true
		}
	}
	return false
}

func (g GloveType) String() string {
	return string(g)
}

// Submission is a single crowdsourced glove report for a place.
// RestaurantName and Address are a snapshot taken at submission time.
type Submission struct {
	ID             string
	PlaceID        string
	RestaurantName string
	Address        string
	GloveType      GloveType
	Notes          string
	SubmittedBy    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewerThan orders submissions by CreatedAt, breaking exact ties by ID so the
// choice of "latest" never depends on input order.
func (s Submission) NewerThan(other Submission) bool {
	if s.CreatedAt.Equal(other.CreatedAt) {
		return s.ID > other.ID
	}
	return s.CreatedAt.After(other.CreatedAt)
}
