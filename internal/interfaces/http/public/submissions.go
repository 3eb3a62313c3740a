package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/latex-free-eats/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/latex-free-eats/api/internal/public/application"
)

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		placeID := r.URL.Query().Get("placeId")
		submissions, err := h.submissionQueries.List(ctx, publicapp.SubmissionFilter{PlaceID: placeID})
		if err != nil {
			h.logger.Printf("submission list fetch failed placeId=%q err=%v", placeID, err)
			common.WriteError(h.logger, w, err, "Failed to load submissions.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, submissionListResponse{
			Submissions: buildSubmissionResponses(submissions),
		})
	}
}

func (h *Handler) submissionDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		submission, err := h.submissionQueries.Detail(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, err, "Failed to load submission.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, submissionDetailResponse{
			Submission: buildSubmissionResponse(*submission),
		})
	}
}

func (h *Handler) submissionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		submission, err := h.submissionCommands.Submit(ctx, publicapp.SubmitGloveReportCommand{
			PlaceID:        req.PlaceID,
			RestaurantName: req.RestaurantName,
			Address:        req.Address,
			GloveType:      req.GloveType,
			Notes:          req.Notes,
			SubmittedBy:    req.SubmittedBy,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, "Failed to save submission.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, submissionMutationResponse{
			Message:    "Submission saved.",
			Submission: buildSubmissionResponse(*submission),
		})
	}
}

func (h *Handler) submissionUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := common.DecodeJSON(r, &req); err != nil {
			common.WriteError(h.logger, w, err, "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		submission, err := h.submissionCommands.Update(ctx, id, publicapp.UpdateGloveReportCommand{
			GloveType:   req.GloveType,
			Notes:       req.Notes,
			SubmittedBy: req.SubmittedBy,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, "Failed to update submission.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, submissionMutationResponse{
			Message:    "Submission updated.",
			Submission: buildSubmissionResponse(*submission),
		})
	}
}

func (h *Handler) submissionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		deleted, err := h.submissionCommands.Delete(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err, "Failed to delete submission.")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, submissionDeleteResponse{
			Message: "Submission deleted.",
			ID:      deleted,
		})
	}
}
