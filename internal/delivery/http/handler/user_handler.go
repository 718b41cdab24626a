package handler

import (
	"errors"

	"diary-rooms/internal/delivery/http/dto"
	"diary-rooms/internal/delivery/http/middleware"
	"diary-rooms/internal/domain/user"
	"diary-rooms/internal/pkg/response"
	"diary-rooms/internal/usecase"
	ucuser "diary-rooms/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateTagsRequest struct {
	Tags []string `json:"tags"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Put("/me/tags", h.UpdateTags)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	profile, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(profile))
}

func (h *UserHandler) UpdateTags(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateTagsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.uc.UpdateTags(c.Context(), userID, req.Tags)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(profile))
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrInvalidTags):
		return middleware.NewAppError(fiber.StatusBadRequest, "Too many tags", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
