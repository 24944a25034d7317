package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/api/metrics"
	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description" validate:"required"`
	BudgetMin   float64  `json:"budget_min" validate:"gt=0"`
	BudgetMax   float64  `json:"budget_max" validate:"gt=0,gtefield=BudgetMin"`
	Niches      []string `json:"niches"`
	Platforms   []string `json:"platforms"`
}

// userSummary is the public client/influencer stub embedded in joined
// responses.
type userSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toSummary(s *ports.UserSummary) *userSummary {
	if s == nil {
		return nil
	}
	return &userSummary{ID: s.ID, Name: s.Name, Slug: s.Slug}
}

type projectResponse struct {
	*domain.Project
	Client *userSummary `json:"client,omitempty"`
}

func toProjectResponse(p *ports.ProjectWithClient) projectResponse {
	return projectResponse{Project: p.Project, Client: toSummary(p.Client)}
}

type projectPageResponse struct {
	Items      []projectResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create posts a new project owned by the authenticated client.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Router       /clients/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), ports.CreateProjectInput{
		ClientID:    userID,
		Title:       req.Title,
		Description: req.Description,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		Niches:      req.Niches,
		Platforms:   req.Platforms,
	})
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, project)
}

// List returns projects filtered and paginated by query parameters.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Param        name       query  string  false  "Title substring (literal match)"
// @Param        status     query  string  false  "Project status"
// @Param        platforms  query  string  false  "Comma-separated platforms"
// @Param        niches     query  string  false  "Comma-separated niches"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        limit      query  int     false  "Page size (max 100)"
// @Param        sort       query  string  false  "Sort field, '-' prefix for descending"
// @Success      200  {object}  projectPageResponse
// @Failure      400  {object}  map[string]string
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	q, err := filter.Build(c.QueryParams(), filter.KindProjects)
	if err != nil {
		return err
	}

	page, err := h.projectService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	items := make([]projectResponse, len(page.Items))
	for i, p := range page.Items {
		items[i] = toProjectResponse(p)
	}
	return c.JSON(http.StatusOK, projectPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

// GetBySlug returns one project by slug, joined with its client summary.
//
// @Summary      Get project by slug
// @Tags         projects
// @Produce      json
// @Param        slug  path  string  true  "Project slug"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  map[string]string
// @Router       /projects/slug/{slug} [get]
func (h *ProjectHandler) GetBySlug(c echo.Context) error {
	p, err := h.projectService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(p))
}

// GetByID returns one project by id, joined with its client summary.
//
// @Summary      Get project by id
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c echo.Context) error {
	p, err := h.projectService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(p))
}

type bidResponse struct {
	*domain.Bid
	Influencer *userSummary `json:"influencer,omitempty"`
}

// ListBids returns the bids on a project. Only the owning client or an admin
// may see them.
//
// @Summary      List bids on a project
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project id"
// @Success      200  {array}   bidResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id}/bids [get]
func (h *ProjectHandler) ListBids(c echo.Context) error {
	userID, role, err := ctxActor(c)
	if err != nil {
		return err
	}

	projectID := c.Param("id")
	if role != domain.RoleAdmin {
		p, err := h.projectService.GetByID(c.Request().Context(), projectID)
		if err != nil {
			return err
		}
		if p.Project.ClientID != userID {
			return domain.ErrForbidden
		}
	}

	bids, err := h.projectService.ListBids(c.Request().Context(), projectID)
	if err != nil {
		return err
	}

	out := make([]bidResponse, len(bids))
	for i, b := range bids {
		out[i] = bidResponse{Bid: b.Bid, Influencer: toSummary(b.Influencer)}
	}
	return c.JSON(http.StatusOK, out)
}
