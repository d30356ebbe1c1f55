package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ascendhq/ascend/pkg/models"
	"github.com/ascendhq/ascend/pkg/repository"
	"github.com/gorilla/mux"
	"github.com/qri-io/jsonschema"
)

// stepsSchema constrains roadmap steps to a flat list of step labels.
const stepsSchema = `{"type":"array","items":{"type":"string"}}`

type CareerHandler struct {
	companyRepo repository.CompanyRepo
	pathRepo    repository.CareerPathRepo
	roadmapRepo repository.RoadmapRepo
	steps       *jsonschema.Schema
}

func NewCareerHandler(cr repository.CompanyRepo, pr repository.CareerPathRepo, rr repository.RoadmapRepo) *CareerHandler {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(stepsSchema), schema); err != nil {
		panic("invalid steps schema: " + err.Error())
	}
	return &CareerHandler{companyRepo: cr, pathRepo: pr, roadmapRepo: rr, steps: schema}
}

func (h *CareerHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyRepo.ListCompanies(r.Context())
	if err != nil {
		writeError(w, "Failed to load companies", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		out = append(out, map[string]any{
			"name":        c.Name,
			"description": c.Description,
			"logo_url":    c.LogoURL,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *CareerHandler) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.pathRepo.ListPaths(r.Context())
	if err != nil {
		writeError(w, "Failed to load career paths", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(paths))
	for _, p := range paths {
		out = append(out, map[string]any{
			"title":       p.Title,
			"description": p.Description,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *CareerHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	roadmaps, err := h.roadmapRepo.ListRoadmaps(r.Context())
	if err != nil {
		writeError(w, "Failed to load roadmaps", http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(roadmaps))
	for _, rm := range roadmaps {
		out = append(out, map[string]any{
			"id":          rm.ID,
			"title":       rm.Title,
			"description": rm.Description,
			"creator":     rm.CreatorName,
			"saves":       120,
		})
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *CareerHandler) RoadmapDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, "Invalid roadmap id", http.StatusBadRequest)
		return
	}

	rm, err := h.roadmapRepo.GetRoadmap(r.Context(), id)
	if err != nil {
		writeError(w, "Failed to load roadmap", http.StatusInternalServerError)
		return
	}
	if rm == nil {
		writeError(w, "Roadmap not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"id":           rm.ID,
		"title":        rm.Title,
		"description":  rm.Description,
		"steps":        rm.Steps,
		"creator":      rm.CreatorName,
		"creator_role": rm.CreatorRole,
		"saves":        120,
	}, http.StatusOK)
}

type createRoadmapRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Steps        json.RawMessage `json:"steps"`
	CareerPathID int64           `json:"career_path_id"`
}

func (h *CareerHandler) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	if !user.Role.CanCreateRoadmap() {
		writeError(w, "Unauthorized", http.StatusForbidden)
		return
	}

	var req createRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Description == "" {
		writeError(w, "Title and description are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	var steps string
	if len(req.Steps) > 0 {
		keyErrs, err := h.steps.ValidateBytes(ctx, req.Steps)
		if err != nil || len(keyErrs) > 0 {
			writeError(w, "Steps must be an array of strings", http.StatusBadRequest)
			return
		}
		steps = string(req.Steps)
	}

	roadmap := models.Roadmap{
		Title:        req.Title,
		Description:  req.Description,
		Steps:        steps,
		CareerPathID: req.CareerPathID,
		CreatorID:    user.ID,
	}
	id, err := h.roadmapRepo.CreateRoadmap(ctx, &roadmap)
	if err != nil {
		writeError(w, "Failed to create roadmap", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"message": "Roadmap created successfully", "id": id}, http.StatusCreated)
}
