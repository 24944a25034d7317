package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/filter"
	"github.com/influconnect/marketplace-api/internal/core/ports"
	"github.com/influconnect/marketplace-api/internal/infrastructure/storage"
)

type InfluencerHandler struct {
	userService ports.UserService
	avatars     *storage.AvatarStore
}

func NewInfluencerHandler(userService ports.UserService, avatars *storage.AvatarStore) *InfluencerHandler {
	return &InfluencerHandler{userService: userService, avatars: avatars}
}

// userPageResponse is the envelope for paginated user listings.
type userPageResponse struct {
	Items      []*domain.User `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// publicUsers strips private fields from profiles served to anyone.
func publicUsers(users []*domain.User) []*domain.User {
	out := make([]*domain.User, len(users))
	for i, u := range users {
		out[i] = publicUser(u)
	}
	return out
}

func publicUser(u *domain.User) *domain.User {
	pub := *u
	pub.Email = ""
	return &pub
}

// List returns influencers filtered and paginated by query parameters.
//
// @Summary      List influencers
// @Tags         influencers
// @Produce      json
// @Param        name       query  string  false  "Name substring (literal match)"
// @Param        platforms  query  string  false  "Comma-separated platforms"
// @Param        niches     query  string  false  "Comma-separated niches"
// @Param        page       query  int     false  "Page number (1-based)"
// @Param        limit      query  int     false  "Page size (max 100)"
// @Param        sort       query  string  false  "Sort field, '-' prefix for descending"
// @Success      200  {object}  userPageResponse
// @Failure      400  {object}  map[string]string
// @Router       /influencers [get]
func (h *InfluencerHandler) List(c echo.Context) error {
	q, err := filter.Build(c.QueryParams(), filter.KindInfluencers)
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

// GetBySlug returns one influencer by profile slug.
//
// @Summary      Get influencer by slug
// @Tags         influencers
// @Produce      json
// @Param        slug  path  string  true  "Profile slug"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /influencers/slug/{slug} [get]
func (h *InfluencerHandler) GetBySlug(c echo.Context) error {
	user, err := h.userService.GetBySlug(c.Request().Context(), c.Param("slug"), domain.RoleInfluencer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicUser(user))
}

// GetByID returns one influencer by id.
//
// @Summary      Get influencer by id
// @Tags         influencers
// @Produce      json
// @Param        id  path  string  true  "Influencer id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /influencers/{id} [get]
func (h *InfluencerHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"), domain.RoleInfluencer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicUser(user))
}

type profileUpdateRequest struct {
	Name      *string       `json:"name" validate:"omitempty,min=2"`
	Bio       *string       `json:"bio"`
	Platforms *[]string     `json:"platforms"`
	Niches    *[]string     `json:"niches"`
	Stats     *domain.Stats `json:"stats"`
}

func (r profileUpdateRequest) toInput() ports.ProfileUpdateInput {
	return ports.ProfileUpdateInput{
		Name:      r.Name,
		Bio:       r.Bio,
		Platforms: r.Platforms,
		Niches:    r.Niches,
		Stats:     r.Stats,
	}
}

// MyProfile returns the authenticated influencer's own profile.
//
// @Summary      Own profile
// @Tags         influencers
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /influencers/me/profile [get]
func (h *InfluencerHandler) MyProfile(c echo.Context) error {
	userID, role, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial update to the authenticated influencer's
// profile. A name change re-derives the profile slug.
//
// @Summary      Update own profile
// @Tags         influencers
// @Accept       json
// @Produce      json
// @Param        body  body      profileUpdateRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /influencers/me/profile [put]
func (h *InfluencerHandler) UpdateProfile(c echo.Context) error {
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

// UploadAvatar stores a new avatar image for the authenticated influencer.
// Expects a multipart form with an "avatar" file field.
//
// @Summary      Upload avatar
// @Tags         influencers
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "Avatar image (png, jpeg, gif or webp, max 5 MiB)"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Router       /influencers/me/avatar [post]
func (h *InfluencerHandler) UploadAvatar(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing avatar file")
	}
	if fh.Size > storage.MaxAvatarSize {
		return echo.NewHTTPError(http.StatusBadRequest, "avatar too large")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable avatar file")
	}
	defer src.Close()

	url, err := h.avatars.Save(src)
	if err != nil {
		return err
	}

	user, err := h.userService.SetAvatar(c.Request().Context(), userID, url)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
