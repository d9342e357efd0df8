package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/pickup"
)

type (
	PickupHandler interface {
		CreateRequest(c *fiber.Ctx) error
		UpdateRequest(c *fiber.Ctx) error
		GetRequests(c *fiber.Ctx) error
	}

	pickupHandler struct {
		pickupService pickup.PickupService
		validator     *validator.Validate
	}
)

func NewPickupHandler(pickupService pickup.PickupService, validator *validator.Validate) PickupHandler {
	return &pickupHandler{
		pickupService: pickupService,
		validator:     validator,
	}
}

func (h *pickupHandler) CreateRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	role := c.Locals("role").(string)

	req := new(domain.CreatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRequest, err)
	}

	request, err := h.pickupService.CreateRequest(c.Context(), userID, role, *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedCreateRequest, err)
	}

	return presenters.SuccessResponse(c, request, fiber.StatusCreated, domain.MessageSuccessCreateRequest)
}

func (h *pickupHandler) UpdateRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	role := c.Locals("role").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRequest, domain.ErrInvalidID)
	}

	req := new(domain.UpdatePickupRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRequest, err)
	}

	request, err := h.pickupService.UpdateRequest(c.Context(), userID, role, uint(id), *req)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedUpdateRequest, err)
	}

	return presenters.SuccessResponse(c, request, fiber.StatusOK, domain.MessageSuccessUpdateRequest)
}

func (h *pickupHandler) GetRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	role := c.Locals("role").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("per_page", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	requests, total, err := h.pickupService.GetRequests(c.Context(), userID, role, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedGetRequests, err)
	}

	return presenters.SuccessResponse(c, &domain.PickupRequestListResponse{
		PickupRequests: requests,
		Total:          total,
		Page:           page,
		PerPage:        limit,
	}, fiber.StatusOK, domain.MessageSuccessGetRequests)
}
