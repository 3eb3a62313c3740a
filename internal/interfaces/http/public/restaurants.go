package public

import (
	"context"
	"net/http"

	"github.com/sngm3741/latex-free-eats/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/latex-free-eats/api/internal/public/application"
)

const reportedSource = "submissions"

func (h *Handler) restaurantSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		result, err := h.restaurantQueries.Search(ctx, publicapp.RestaurantQuery{
			Term:         query.Get("query"),
			ExcludeLatex: common.ParseBool(query.Get("excludeLatex"), false),
		})
		if err != nil {
			h.logger.Printf("restaurant search failed query=%q err=%v", query.Get("query"), err)
			common.WriteError(h.logger, w, err, "Failed to load restaurants.")
			return
		}

		configured := result.LiveLookup
		common.WriteJSON(h.logger, w, http.StatusOK, restaurantListResponse{
			Source:              result.Source,
			GoogleAPIConfigured: &configured,
			Restaurants:         buildRestaurantResponses(result.Restaurants),
		})
	}
}

func (h *Handler) reportedRestaurantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		excludeLatex := common.ParseBool(r.URL.Query().Get("excludeLatex"), false)
		reported, err := h.restaurantQueries.Reported(ctx, excludeLatex)
		if err != nil {
			h.logger.Printf("reported restaurants fetch failed err=%v", err)
			common.WriteError(h.logger, w, err, "Failed to load reported restaurants.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, restaurantListResponse{
			Source:      reportedSource,
			Restaurants: buildRestaurantResponses(reported),
		})
	}
}
