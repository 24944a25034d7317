package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

type ClientHandler struct {
	userService ports.UserService
}

func NewClientHandler(userService ports.UserService) *ClientHandler {
	return &ClientHandler{userService: userService}
}

// List returns clients filtered and paginated by query parameters. Clients
// expose a narrower filter surface than influencers: name, pagination and
// sort only.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        name   query  string  false  "Name substring (literal match)"
// @Param        page   query  int     false  "Page number (1-based)"
// @Param        limit  query  int     false  "Page size (max 100)"
// @Param        sort   query  string  false  "Sort field, '-' prefix for descending"
// @Success      200  {object}  userPageResponse
// @Failure      400  {object}  map[string]string
// @Router       /clients/filter [get]
func (h *ClientHandler) List(c echo.Context) error {
	q, err := filter.Build(c.QueryParams(), filter.KindClients)
	if err != nil {
		return err
	}

	page, err := h.userService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userPageResponse{
		Items:      publicUsers(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

// MyProfile returns the authenticated client's own profile.
//
// @Summary      Own profile
// @Tags         clients
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /clients/me/profile [get]
func (h *ClientHandler) MyProfile(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), userID, domain.RoleClient)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated client's
// profile.
//
// @Summary      Update own profile
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /clients/me/profile [put]
func (h *ClientHandler) UpdateProfile(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
