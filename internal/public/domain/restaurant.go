package domain

import "sort"

// Restaurant is a place returned by the external lookup.
type Restaurant struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Rating           *float64
}

// RestaurantGloves pairs a restaurant with its report summary.
// GloveInfo is nil when nobody has reported on the place yet.
type RestaurantGloves struct {
	Restaurant
	GloveInfo *GloveInfo
}

// MergeGloveInfo left-joins restaurants with the aggregate by place id.
// Places that only exist in the aggregate are dropped.
func MergeGloveInfo(restaurants []Restaurant, infos map[string]GloveInfo) []RestaurantGloves {
	merged := make([]RestaurantGloves, 0, len(restaurants))
	for _, restaurant := range restaurants {
		item := RestaurantGloves{Restaurant: restaurant}
		if info, ok := infos[restaurant.PlaceID]; ok {
			item.GloveInfo = &info
		}
		merged = append(merged, item)
	}
	return merged
}

// ReportedRestaurants builds restaurants straight from submission groups,
// using the latest report's name and address. Results are ordered by latest
// report time, newest first, then by place id.
func ReportedRestaurants(submissions []Submission) []RestaurantGloves {
	groups := groupByPlace(submissions)
	reported := make([]RestaurantGloves, 0, len(groups))
	for placeID, group := range groups {
		info := group.info
		reported = append(reported, RestaurantGloves{
			Restaurant: Restaurant{
				PlaceID:          placeID,
				Name:             group.latest.RestaurantName,
				FormattedAddress: group.latest.Address,
			},
			GloveInfo: &info,
		})
	}

	sort.Slice(reported, func(i, j int) bool {
		a, b := reported[i].GloveInfo.LatestSubmittedAt, reported[j].GloveInfo.LatestSubmittedAt
		if a.Equal(b) {
			return reported[i].PlaceID < reported[j].PlaceID
		}
		return a.After(b)
	})
	return reported
}

// ExcludeLatest drops restaurants whose latest report is the given glove type.
// Restaurants without reports are kept.
func ExcludeLatest(items []RestaurantGloves, glove GloveType) []RestaurantGloves {
	kept := make([]RestaurantGloves, 0, len(items))
	for _, item := range items {
		if item.GloveInfo != nil && item.GloveInfo.LatestGloveType == glove {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
