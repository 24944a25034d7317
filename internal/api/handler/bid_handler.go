package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influconnect/marketplace-api/internal/api/metrics"
	"github.com/influconnect/marketplace-api/internal/core/domain"
	"github.com/influconnect/marketplace-api/internal/core/ports"
)

type BidHandler struct {
	bidService ports.BidService
}

func NewBidHandler(bidService ports.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

type placeBidRequest struct {
	ProjectID string  `json:"project_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Message   string  `json:"message" validate:"max=2000"`
}

// Place creates a pending bid by the authenticated influencer.
//
// @Summary      Place a bid
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        body  body      placeBidRequest  true  "Bid details"
// @Success      201   {object}  domain.Bid
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /influencers/bids [post]
func (h *BidHandler) Place(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bid, err := h.bidService.Place(c.Request().Context(), ports.PlaceBidInput{
		ProjectID:    req.ProjectID,
		InfluencerID: userID,
		Amount:       req.Amount,
		Message:      req.Message,
	})
	if err != nil {
		metrics.BidsPlacedTotal.WithLabelValues(placeResult(err)).Inc()
		return err
	}

	metrics.BidsPlacedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, bid)
}

func placeResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateBid):
		return "duplicate"
	case errors.Is(err, domain.ErrProjectNotOpen):
		return "project_not_open"
	default:
		return "error"
	}
}

// ListMine returns the projects the authenticated influencer has bid on,
// newest first, each joined with the client summary and the bid itself.
//
// @Summary      List own bids
// @Tags         bids
// @Produce      json
// @Success      200  {array}   bidProjectResponse
// @Failure      401  {object}  map[string]string
// @Router       /influencers/me/bids [get]
func (h *BidHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	items, err := h.bidService.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]bidProjectResponse, len(items))
	for i, it := range items {
		out[i] = bidProjectResponse{
			Project: it.Project,
			Client:  toSummary(it.Client),
			Bid:     it.Bid,
		}
	}
	return c.JSON(http.StatusOK, out)
}

type bidProjectResponse struct {
	Project *domain.Project `json:"project"`
	Client  *userSummary    `json:"client,omitempty"`
	Bid     *domain.Bid     `json:"bid"`
}

// Accept transitions a pending bid to accepted. Client-owner only.
//
// @Summary      Accept a bid
// @Tags         bids
// @Produce      json
// @Param        id  path  string  true  "Bid id"
// @Success      200  {object}  domain.Bid
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /bids/{id}/accept [post]
func (h *BidHandler) Accept(c echo.Context) error {
	return h.transition(c, "accept", h.bidService.Accept)
}

// Reject transitions a pending bid to rejected. Client-owner only.
//
// @Summary      Reject a bid
// @Tags         bids
// @Produce      json
// @Param        id  path  string  true  "Bid id"
// @Success      200  {object}  domain.Bid
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /bids/{id}/reject [post]
func (h *BidHandler) Reject(c echo.Context) error {
	return h.transition(c, "reject", h.bidService.Reject)
}

// Withdraw transitions a pending bid to withdrawn. Bid owner only.
//
// @Summary      Withdraw a bid
// @Tags         bids
// @Produce      json
// @Param        id  path  string  true  "Bid id"
// @Success      200  {object}  domain.Bid
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /bids/{id}/withdraw [post]
func (h *BidHandler) Withdraw(c echo.Context) error {
	return h.transition(c, "withdraw", h.bidService.Withdraw)
}

type transitionFn func(ctx context.Context, bidID, actorID string) (*domain.Bid, error)

func (h *BidHandler) transition(c echo.Context, action string, fn transitionFn) error {
	userID, _, err := ctxActor(c)
	if err != nil {
		return err
	}

	bid, err := fn(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		metrics.BidTransitionsTotal.WithLabelValues(action, transitionResult(err)).Inc()
		return err
	}

	metrics.BidTransitionsTotal.WithLabelValues(action, "ok").Inc()
	return c.JSON(http.StatusOK, bid)
}

func transitionResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
