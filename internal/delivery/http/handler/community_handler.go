package handler

import (
	"errors"
	"strconv"

	"diary-rooms/internal/delivery/http/dto"
	"diary-rooms/internal/delivery/http/middleware"
	"diary-rooms/internal/domain/community"
	"diary-rooms/internal/pkg/response"
	"diary-rooms/internal/repository"
	"diary-rooms/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CommunityHandler struct {
	communities usecase.CommunityUsecase
	ranking     usecase.RecommendationUsecase
	memberships usecase.MembershipUsecase
}

type createCommunityRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPrivate   bool     `json:"isPrivate"`
}

type joinCommunityRequest struct {
	Confirm bool `json:"confirm"`
}

func NewCommunityHandler(communities usecase.CommunityUsecase, ranking usecase.RecommendationUsecase, memberships usecase.MembershipUsecase) *CommunityHandler {
	return &CommunityHandler{communities: communities, ranking: ranking, memberships: memberships}
}

func (h *CommunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/default", h.List)
	r.Get("/my", h.Joined)
	r.Get("/search", h.List)
	r.Get("/recommended", h.Recommended)
	r.Get("/trending", h.Trending)
	r.Get("/:id", h.Get)
	r.Post("/:id/join", h.Join)
	r.Post("/:id/leave", h.Leave)
}

// List serves the catalog, filtered when category or q is present.
// Without either it is the full public catalog, every entry carrying a
// match score.
func (h *CommunityHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.ranking.Search(c.Context(), userID, c.Query("category"), c.Query("q"))
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankedCommunityListResponse(items))
}

func (h *CommunityHandler) Recommended(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.ranking.Recommended(c.Context(), userID)
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	items = items[:clampLimit(parseQueryInt(c, "limit", 0), len(items))]
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRankedCommunityListResponse(items))
}

func (h *CommunityHandler) Trending(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.ranking.Trending(c.Context(), userID)
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	items = items[:clampLimit(parseQueryInt(c, "limit", 0), len(items))]
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCommunityListResponse(items))
}

func (h *CommunityHandler) Joined(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.communities.ListJoined(c.Context(), userID)
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCommunityListResponse(items))
}

func (h *CommunityHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.communities.Get(c.Context(), id, userID)
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCommunityResponse(item))
}

func (h *CommunityHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createCommunityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.communities.Create(c.Context(), usecase.CreateCommunityInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
		OwnerID:     userID,
	})
	if err != nil {
		return mapCommunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewCommunityResponse(created))
}

// Join commits a membership change, or answers 409 with the parked
// switch when the caller holds another room and has not confirmed.
func (h *CommunityHandler) Join(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req joinCommunityRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	outcome, err := h.memberships.Join(c.Context(), userID, id, req.Confirm)
	if err != nil {
		if errors.Is(err, usecase.ErrConfirmationRequired) {
			current := outcome.Current
			target := outcome.Pending
			data := dto.JoinResponse{
				CurrentCommunityID: &current,
				TargetCommunityID:  &target,
			}
			return middleware.NewAppError(fiber.StatusConflict, "Confirmation required", data, err)
		}
		return mapCommunityUsecaseError(err)
	}

	joined := outcome.Joined
	res := dto.JoinResponse{Joined: &joined, AlreadyMember: outcome.AlreadyMember}
	if outcome.Left != uuid.Nil {
		left := outcome.Left
		res.Left = &left
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CommunityHandler) Leave(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.memberships.Leave(c.Context(), userID, id); err != nil {
		return mapCommunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapCommunityUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, community.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Community not found", nil, err)
	case errors.Is(err, repository.ErrAlreadyMember):
		return middleware.NewAppError(fiber.StatusConflict, "Already a member", nil, err)
	case errors.Is(err, repository.ErrNotMember):
		return middleware.NewAppError(fiber.StatusConflict, "Not a member", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseQueryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func clampLimit(limit, n int) int {
	if limit <= 0 || limit > n {
		return n
	}
	return limit
}
