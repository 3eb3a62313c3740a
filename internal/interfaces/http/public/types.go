package public

import (
	"time"

	publicdomain "github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

type submissionResponse struct {
	ID             string    `json:"id"`
	PlaceID        string    `json:"placeId"`
	RestaurantName string    `json:"restaurantName"`
	Address        string    `json:"address"`
	GloveType      string    `json:"gloveType"`
	Notes          string    `json:"notes"`
	SubmittedBy    string    `json:"submittedBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type gloveInfoResponse struct {
	LatestGloveType   string         `json:"latestGloveType"`
	LatestNotes       string         `json:"latestNotes"`
	LatestSubmittedAt time.Time      `json:"latestSubmittedAt"`
	SubmissionCount   int            `json:"submissionCount"`
	GloveTypeCounts   map[string]int `json:"gloveTypeCounts"`
}

// restaurantResponse は Places API の snake_case をそのまま返す。
type restaurantResponse struct {
	PlaceID          string             `json:"place_id"`
	Name             string             `json:"name"`
	FormattedAddress string             `json:"formatted_address"`
	Rating           *float64           `json:"rating"`
	GloveInfo        *gloveInfoResponse `json:"gloveInfo"`
}

type restaurantListResponse struct {
	Source              string               `json:"source"`
	GoogleAPIConfigured *bool                `json:"googleApiConfigured,omitempty"`
	Restaurants         []restaurantResponse `json:"restaurants"`
}

type submissionListResponse struct {
	Submissions []submissionResponse `json:"submissions"`
}

type submissionDetailResponse struct {
	Submission submissionResponse `json:"submission"`
}

type submissionMutationResponse struct {
	Message    string             `json:"message"`
	Submission submissionResponse `json:"submission"`
}

type submissionDeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type submitRequest struct {
	PlaceID        string `json:"placeId"`
	RestaurantName string `json:"restaurantName"`
	Address        string `json:"address"`
	GloveType      string `json:"gloveType"`
	Notes          string `json:"notes"`
	SubmittedBy    string `json:"submittedBy"`
}

type updateRequest struct {
	GloveType   string `json:"gloveType"`
	Notes       string `json:"notes"`
	SubmittedBy string `json:"submittedBy"`
}

// buildSubmissionResponse はドメインの Submission を API 表現へ変換する。
func buildSubmissionResponse(s publicdomain.Submission) submissionResponse {
	return submissionResponse{
		ID:             s.ID,
		PlaceID:        s.PlaceID,
		RestaurantName: s.RestaurantName,
		Address:        s.Address,
		GloveType:      s.GloveType.String(),
		Notes:          s.Notes,
		SubmittedBy:    s.SubmittedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func buildSubmissionResponses(items []publicdomain.Submission) []submissionResponse {
	res := make([]submissionResponse, 0, len(items))
	for _, item := range items {
		res = append(res, buildSubmissionResponse(item))
	}
	return res
}

func buildGloveInfoResponse(info *publicdomain.GloveInfo) *gloveInfoResponse {
	if info == nil {
		return nil
	}
	counts := make(map[string]int, len(info.GloveTypeCounts))
	for glove, count := range info.GloveTypeCounts {
		counts[glove.String()] = count
	}
	return &gloveInfoResponse{
		LatestGloveType:   info.LatestGloveType.String(),
		LatestNotes:       info.LatestNotes,
		LatestSubmittedAt: info.LatestSubmittedAt,
		SubmissionCount:   info.SubmissionCount,
		GloveTypeCounts:   counts,
	}
}

// buildRestaurantResponses は集計済みレストランを一覧 DTO に変換する。gloveInfo が無い店は null になる。
func buildRestaurantResponses(items []publicdomain.RestaurantGloves) []restaurantResponse {
	res := make([]restaurantResponse, 0, len(items))
	for _, item := range items {
		res = append(res, restaurantResponse{
			PlaceID:          item.PlaceID,
			Name:             item.Name,
			FormattedAddress: item.FormattedAddress,
			Rating:           item.Rating,
			GloveInfo:        buildGloveInfoResponse(item.GloveInfo),
		})
	}
	return res
}
