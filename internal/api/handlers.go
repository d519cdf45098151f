// Package api exposes the pipeline over HTTP: a webhook for brand-action
// outreach triggers and read endpoints for matches, creators and events.
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/glowlink/creator-cli/internal/config"
	"github.com/glowlink/creator-cli/internal/contact"
	"github.com/glowlink/creator-cli/internal/match"
	"github.com/glowlink/creator-cli/internal/model"
	"github.com/glowlink/creator-cli/internal/outreach"
	"github.com/glowlink/creator-cli/internal/store"
)

// Handlers bundles the dependencies the HTTP endpoints need.
type Handlers struct {
	store    store.Store
	orch     *outreach.Orchestrator
	matchCfg config.MatchConfig
}

// NewHandlers creates the handler set.
func NewHandlers(st store.Store, orch *outreach.Orchestrator, matchCfg config.MatchConfig) *Handlers {
	return &Handlers{store: st, orch: orch, matchCfg: matchCfg}
}

// HandleHealth reports liveness.
//
//	GET /health
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleOutreachWebhook accepts a brand-action event and runs the outreach
// state machine. A skipped send is a 200 with sent=false and a reason.
//
//	POST /webhook/outreach
func (h *Handlers) HandleOutreachWebhook(w http.ResponseWriter, r *http.Request) {
	var req outreach.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Action.Valid() {
		respondError(w, http.StatusBadRequest, "unknown action")
		return
	}
	if req.BrandProfileID == 0 {
		respondError(w, http.StatusBadRequest, "brand_profile_id is required")
		return
	}

	result, err := h.orch.Trigger(r.Context(), req)
	if err != nil {
		zap.L().Error("webhook: outreach trigger failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "outreach trigger failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleExtract runs contact extraction over posted text. Pure and
// side-effect free; useful for previewing what a bio would yield.
//
//	POST /extract
func (h *Handlers) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, contact.ExtractContacts(req.Text, "api_extract"))
}

// HandleListCreators lists discovered creators with optional filters.
//
//	GET /creators?platform=&niche=&min_followers=&limit=&offset=
func (h *Handlers) HandleListCreators(w http.ResponseWriter, r *http.Request) {
	filter := creatorFilterFromQuery(r)

	creators, err := h.store.ListDiscoveredCreators(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list creators failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list creators failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"creators": creators,
		"count":    len(creators),
	})
}

// HandleCampaignMatches ranks the discovered corpus for one campaign.
//
//	POST /campaigns/{id}/matches
func (h *Handlers) HandleCampaignMatches(w http.ResponseWriter, r *http.Request) {
	campaignID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid campaign id")
		return
	}

	campaign, err := h.store.GetCampaign(r.Context(), campaignID)
	if err != nil {
		zap.L().Error("api: get campaign failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "get campaign failed")
		return
	}
	if campaign == nil {
		respondError(w, http.StatusNotFound, "campaign not found")
		return
	}

	creators, err := h.loadCorpus(r)
	if err != nil {
		zap.L().Error("api: load corpus failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "load creators failed")
		return
	}

	list, err := match.RankForCampaign(r.Context(), campaign, creators, h.matchCfg)
	if err != nil {
		zap.L().Error("api: rank failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "ranking failed")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// HandleBrandMatches scores the discovered corpus against a brand profile,
// highest score first.
//
//	POST /brands/{id}/matches
func (h *Handlers) HandleBrandMatches(w http.ResponseWriter, r *http.Request) {
	brandID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	brand, err := h.store.GetBrandProfile(r.Context(), brandID)
	if err != nil {
		zap.L().Error("api: get brand failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "get brand failed")
		return
	}
	if brand == nil {
		respondError(w, http.StatusNotFound, "brand profile not found")
		return
	}

	creators, err := h.loadCorpus(r)
	if err != nil {
		zap.L().Error("api: load corpus failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "load creators failed")
		return
	}

	type scoredCreator struct {
		Creator match.Creator    `json:"creator"`
		Result  match.BrandScore `json:"result"`
	}
	scored := make([]scoredCreator, len(creators))
	for i, c := range creators {
		scored[i] = scoredCreator{Creator: c, Result: match.ScoreAgainstBrand(brand, c, h.matchCfg)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Result.Score != scored[j].Result.Score {
			return scored[i].Result.Score > scored[j].Result.Score
		}
		return scored[i].Creator.ID < scored[j].Creator.ID
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"matches": scored,
		"count":   len(scored),
	})
}

// HandleIdentityEvents returns the outreach audit trail for one identity,
// newest first.
//
//	GET /identities/{id}/events
func (h *Handlers) HandleIdentityEvents(w http.ResponseWriter, r *http.Request) {
	identityID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid identity id")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	events, err := h.store.ListOutreachEvents(r.Context(), identityID, limit)
	if err != nil {
		zap.L().Error("api: list events failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list events failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// loadCorpus lists discovered creators per the request's query filters and
// normalizes them for scoring.
func (h *Handlers) loadCorpus(r *http.Request) ([]match.Creator, error) {
	discovered, err := h.store.ListDiscoveredCreators(r.Context(), creatorFilterFromQuery(r))
	if err != nil {
		return nil, err
	}
	creators := make([]match.Creator, len(discovered))
	for i := range discovered {
		creators[i] = match.FromDiscovered(&discovered[i])
	}
	return creators, nil
}

func creatorFilterFromQuery(r *http.Request) store.CreatorFilter {
	q := r.URL.Query()
	filter := store.CreatorFilter{
		Platform: model.Platform(q.Get("platform")),
		Niche:    q.Get("niche"),
	}
	if v := q.Get("min_followers"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			filter.MinFollowers = n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Offset = n
		}
	}
	return filter
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
