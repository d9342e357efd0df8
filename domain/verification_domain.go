package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessSubmitVerification = "verification request submitted successfully"
	MessageSuccessGetVerifications   = "verification requests retrieved successfully"
	MessageSuccessReviewVerification = "verification request reviewed successfully"

	MessageFailedSubmitVerification = "failed to submit verification request"
	MessageFailedGetVerifications   = "failed to retrieve verification requests"
	MessageFailedReviewVerification = "failed to review verification request"

	ErrVerificationRequestNotFound = errors.New("verification request not found")
	ErrInvalidVerificationStatus   = errors.New("invalid verification status")
)

type (
	SubmitVerificationRequest struct {
		OrganizationName string                `json:"organization_name" form:"organization_name" validate:"omitempty,max=200"`
		OrganizationType string                `json:"organization_type" form:"organization_type" validate:"required,oneof=restaurant ngo shelter food_bank other"`
		Description      string                `json:"description" form:"description" validate:"omitempty"`
		Document         *multipart.FileHeader `json:"document" form:"document" validate:"omitempty"`
	}

	ReviewVerificationRequest struct {
		Status     string `json:"status" validate:"required,oneof=approved rejected"`
		AdminNotes string `json:"admin_notes" validate:"omitempty"`
	}

	VerificationRequestResponse struct {
		ID               uint       `json:"id"`
		UserID           uint       `json:"user_id"`
		UserName         string     `json:"user_name,omitempty"`
		OrganizationName string     `json:"organization_name,omitempty"`
		OrganizationType string     `json:"organization_type"`
		DocumentURL      string     `json:"document_url,omitempty"`
		Description      string     `json:"description,omitempty"`
		Status           string     `json:"status"`
		AdminNotes       string     `json:"admin_notes,omitempty"`
		SubmittedAt      time.Time  `json:"submitted_at"`
		ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
		ReviewedBy       *uint      `json:"reviewed_by,omitempty"`
	}

	VerificationListResponse struct {
		VerificationRequests []*VerificationRequestResponse `json:"verification_requests"`
		Total                int64                          `json:"total"`
		Page                 int                            `json:"page"`
		PerPage              int                            `json:"per_page"`
	}
)
