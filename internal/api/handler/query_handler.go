package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/api/metrics"
	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

type QueryHandler struct {
	queryService ports.QueryService
}

func NewQueryHandler(queryService ports.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

type submitQueryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,max=5000"`
}

type submitQueryResponse struct {
	Query     *domain.ContactQuery `json:"query,omitempty"`
	Duplicate bool                 `json:"duplicate"`
}

// Submit accepts a public contact-form submission. Duplicate submissions
// within the dedup window are acknowledged without being stored again.
//
// @Summary      Submit a contact query
// @Tags         queries
// @Accept       json
// @Produce      json
// @Param        body  body      submitQueryRequest  true  "Contact query"
// @Success      201   {object}  submitQueryResponse
// @Success      200   {object}  submitQueryResponse
// @Failure      400   {object}  map[string]string
// @Router       /queries [post]
func (h *QueryHandler) Submit(c echo.Context) error {
	var req submitQueryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	query, duplicate, err := h.queryService.Submit(c.Request().Context(), ports.SubmitQueryInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	if duplicate {
		metrics.QueriesSubmittedTotal.WithLabelValues("duplicate").Inc()
		return c.JSON(http.StatusOK, submitQueryResponse{Duplicate: true})
	}

	metrics.QueriesSubmittedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, submitQueryResponse{Query: query})
}

// List returns all contact queries, newest first. Admin only.
//
// @Summary      List contact queries
// @Tags         queries
// @Produce      json
// @Success      200  {array}   domain.ContactQuery
// @Failure      403  {object}  map[string]string
// @Router       /queries [get]
func (h *QueryHandler) List(c echo.Context) error {
	queries, err := h.queryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, queries)
}
