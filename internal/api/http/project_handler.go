package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/service"
)

// ProjectHandler serves fundraising project browsing and management.
type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	GoalAmount  int64  `json:"goal_amount"`
	ImageURL    string `json:"image_url"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project := &domain.Project{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		ImageURL:    req.ImageURL,
		Status:      domain.ProjectStatusActive,
	}
	if err := h.projectService.CreateProject(r.Context(), claims.UserID, project); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

type projectListResponse struct {
	Projects []domain.Project `json:"projects"`
	Total    int32            `json:"total"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	category := r.URL.Query().Get("category")

	projects, total, err := h.projectService.ListProjects(r.Context(), category, page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	writeJSON(w, http.StatusOK, projectListResponse{Projects: projects, Total: total})
}

type projectDetailResponse struct {
	Project *domain.Project        `json:"project"`
	Updates []domain.ProjectUpdate `json:"updates"`
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, updates, err := h.projectService.GetProject(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, projectDetailResponse{Project: project, Updates: updates})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	projectID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req projectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project := &domain.Project{
		ID:          projectID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		GoalAmount:  req.GoalAmount,
		ImageURL:    req.ImageURL,
	}
	if err := h.projectService.UpdateProject(r.Context(), claims.UserID, project); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type projectUpdateRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// PostUpdate publishes a proof-of-impact update on a project.
func (h *ProjectHandler) PostUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	projectID, ok := pathInt32(mux.Vars(r), "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req projectUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update := &domain.ProjectUpdate{
		ProjectID: projectID,
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
	}
	if err := h.projectService.PostUpdate(r.Context(), claims.UserID, update); err != nil {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, update)
}
