package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/onboarding/dto"
	"feesetu_backend/internals/features/onboarding/model"
	"feesetu_backend/internals/features/onboarding/service"
	parentModel "feesetu_backend/internals/features/users/parent/model"
	helper "feesetu_backend/internals/helpers"
	helperAuth "feesetu_backend/internals/helpers/auth"
)

type Handler struct {
	DB *gorm.DB
}

// GET /api/p/onboarding/draft
func (h *Handler) GetDraft(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var draft model.OnboardingDraft
	err = h.DB.WithContext(c.UserContext()).
		Where("onboarding_draft_parent_user_id = ?", userID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// fresh wizard, nothing saved yet
		return helper.JsonOK(c, "no draft", fiber.Map{
			"current_step": model.StepStudentDetails,
			"payload":      nil,
		})
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "draft", draft)
}

// PUT /api/p/onboarding/draft
func (h *Handler) PutDraft(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.DraftPutRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	// completed parents have no draft to save
	var profile parentModel.ParentProfile
	if err := h.DB.WithContext(c.UserContext()).
		Where("parent_profile_user_id = ?", userID).
		First(&profile).Error; err == nil && profile.ParentProfileIsOnboardingCompleted {
		return helper.JsonError(c, http.StatusConflict, "onboarding already completed")
	}

	var draft model.OnboardingDraft
	err = h.DB.WithContext(c.UserContext()).
		Where("onboarding_draft_parent_user_id = ?", userID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		draft = model.OnboardingDraft{OnboardingDraftParentUserID: userID}
	} else if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	draft.OnboardingDraftCurrentStep = in.CurrentStep
	draft.OnboardingDraftPayload = []byte(in.Payload)

	if err := h.DB.WithContext(c.UserContext()).Save(&draft).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "draft saved", draft)
}

// POST /api/p/onboarding/submit
func (h *Handler) Submit(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.OnboardingSubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	// whole payload validated before any write
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	result, err := service.SubmitOnboarding(c.UserContext(), h.DB, userID, &in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "application submitted", result)
}

// POST /api/p/onboarding/kyc-document  (multipart, field "document")
func (h *Handler) UploadKYCDocument(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "document file is required")
	}

	url, err := helper.UploadKYCImage("kyc/"+userID.String(), fileHeader)
	if err != nil {
		return helper.JsonError(c, http.StatusBadGateway, err.Error())
	}

	// profile row may not exist yet when KYC comes before the final step
	var profile parentModel.ParentProfile
	err = h.DB.WithContext(c.UserContext()).
		Where("parent_profile_user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = parentModel.ParentProfile{ParentProfileUserID: userID}
	} else if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	profile.ParentProfileKYCDocumentURL = &url
	if err := h.DB.WithContext(c.UserContext()).Save(&profile).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "kyc document uploaded", fiber.Map{"url": url})
}
