package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodbridge-backend/domain"
	"foodbridge-backend/entities"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/food"
	"foodbridge-backend/pkg/user"
)

type (
	FoodHandler interface {
		CreateFoodItem(c *fiber.Ctx) error
		GetFoodItems(c *fiber.Ctx) error
		GetFoodItemDetails(c *fiber.Ctx) error
		UpdateFoodItem(c *fiber.Ctx) error
		UploadFoodImage(c *fiber.Ctx) error
	}

	foodHandler struct {
		foodService food.FoodService
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewFoodHandler(foodService food.FoodService, userService user.UserService, validator *validator.Validate) FoodHandler {
	return &foodHandler{
		foodService: foodService,
		userService: userService,
		validator:   validator,
	}
}

func (h *foodHandler) CreateFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(domain.CreateFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFoodItem, err)
	}

	donor, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedCreateFoodItem, err)
	}

	item, err := h.foodService.CreateFoodItem(c.Context(), *req, donor)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedCreateFoodItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusCreated, domain.MessageSuccessCreateFoodItem)
}

func (h *foodHandler) GetFoodItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	actor, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.Query("per_page", "20"))
	if err != nil || perPage < 1 {
		perPage = 20
	}
	maxDistance, err := strconv.ParseFloat(c.Query("max_distance", "10"), 64)
	if err != nil || maxDistance <= 0 {
		maxDistance = 10
	}

	query := domain.ListFoodItemsQuery{
		Status:      entities.FoodStatus(c.Query("status", "available")),
		MaxDistance: maxDistance,
		Page:        page,
		PerPage:     perPage,
	}

	listing, err := h.foodService.ListFoodItems(c.Context(), actor, query)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, listing, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) GetFoodItemDetails(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFoodItems, domain.ErrInvalidID)
	}

	item, err := h.foodService.GetFoodItemByID(c.Context(), uint(id))
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedGetFoodItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetFoodItems)
}

func (h *foodHandler) UpdateFoodItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, domain.ErrInvalidID)
	}

	req := new(domain.UpdateFoodItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFoodItem, err)
	}

	item, err := h.foodService.UpdateFoodItem(c.Context(), uint(id), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedUpdateFoodItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessUpdateFoodItem)
}

func (h *foodHandler) UploadFoodImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrInvalidID)
	}

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	item, err := h.foodService.UploadFoodImage(c.Context(), uint(id), image, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
