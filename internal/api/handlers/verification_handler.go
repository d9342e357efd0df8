package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"foodbridge-backend/domain"
	"foodbridge-backend/internal/api/presenters"
	"foodbridge-backend/pkg/verification"
)

type (
	VerificationHandler interface {
		SubmitRequest(c *fiber.Ctx) error
		GetRequests(c *fiber.Ctx) error
		ReviewRequest(c *fiber.Ctx) error
	}

	verificationHandler struct {
		verificationService verification.VerificationService
		validator           *validator.Validate
	}
)

func NewVerificationHandler(verificationService verification.VerificationService, validator *validator.Validate) VerificationHandler {
	return &verificationHandler{
		verificationService: verificationService,
		validator:           validator,
	}
}

func (h *verificationHandler) SubmitRequest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(domain.SubmitVerificationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if document, err := c.FormFile("document"); err == nil {
		req.Document = document
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitVerification, err)
	}

	request, err := h.verificationService.SubmitRequest(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedSubmitVerification, err)
	}

	return presenters.SuccessResponse(c, request, fiber.StatusCreated, domain.MessageSuccessSubmitVerification)
}

func (h *verificationHandler) GetRequests(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("per_page", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	requests, total, err := h.verificationService.GetRequests(c.Context(), c.Query("status", "pending"), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedGetVerifications, err)
	}

	return presenters.SuccessResponse(c, &domain.VerificationListResponse{
		VerificationRequests: requests,
		Total:                total,
		Page:                 page,
		PerPage:              limit,
	}, fiber.StatusOK, domain.MessageSuccessGetVerifications)
}

func (h *verificationHandler) ReviewRequest(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReviewVerification, domain.ErrInvalidID)
	}

	req := new(domain.ReviewVerificationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReviewVerification, err)
	}

	request, err := h.verificationService.ReviewRequest(c.Context(), uint(id), *req, adminID)
	if err != nil {
		return presenters.ErrorResponse(c, domain.ErrorStatus(err), domain.MessageFailedReviewVerification, err)
	}

	return presenters.SuccessResponse(c, request, fiber.StatusOK, domain.MessageSuccessReviewVerification)
}
