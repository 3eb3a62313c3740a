package domain

import "time"

// GloveInfo summarises every report filed for one place.
// It is derived on each read and never stored.
type GloveInfo struct {
	LatestGloveType   GloveType
	LatestNotes       string
	LatestSubmittedAt time.Time
	SubmissionCount   int
	GloveTypeCounts   map[GloveType]int
}

type placeGroup struct {
	latest Submission
	info   GloveInfo
}

// groupByPlace makes a single pass over submissions, keeping a running
// latest report and per-type counts for each place.
func groupByPlace(submissions []Submission) map[string]*placeGroup {
	groups := make(map[string]*placeGroup)
	for _, submission := range submissions {
		group, ok := groups[submission.PlaceID]
		if !ok {
			group = &placeGroup{
				latest: submission,
				info:   GloveInfo{GloveTypeCounts: make(map[GloveType]int)},
			}
			groups[submission.PlaceID] = group
		} else if submission.NewerThan(group.latest) {
			group.latest = submission
		}
		group.info.SubmissionCount++
		group.info.GloveTypeCounts[submission.GloveType]++
	}

	for _, group := range groups {
		group.info.LatestGloveType = group.latest.GloveType
		group.info.LatestNotes = group.latest.Notes
		group.info.LatestSubmittedAt = group.latest.CreatedAt
	}
	return groups
}

// AggregateGloveInfo collapses submissions into one GloveInfo per place id.
// The input slice is not modified; an empty input yields an empty map.
// When several reports share the newest CreatedAt the one with the greatest
// ID is treated as latest.
func AggregateGloveInfo(submissions []Submission) map[string]GloveInfo {
	groups := groupByPlace(submissions)
	result := make(map[string]GloveInfo, len(groups))
	for placeID, group := range groups {
		result[placeID] = group.info
	}
	return result
}
