package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/emi/plans/dto"
	"feesetu_backend/internals/features/emi/plans/model"
	"feesetu_backend/internals/features/emi/plans/service"
	helper "feesetu_backend/internals/helpers"
)

type EmiPlanController struct {
	DB *gorm.DB
}

// GET /api/public/emi-plans
func (ctl *EmiPlanController) List(c *fiber.Ctx) error {
	var plans []model.EmiPlan
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("emi_plan_is_active = ?", true).
		Order("emi_plan_duration_months ASC").
		Find(&plans).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "emi plans", plans)
}

// POST /api/public/emi-plans/quote
//
// Pure preview: normalizes the plan id, computes the quote, writes nothing.
func (ctl *EmiPlanController) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	key := service.NormalizePlanKey(in.EmiPlanID)
	duration, ok := service.DurationFromPlanKey(key)
	if !ok || !model.IsCatalogDuration(duration) {
		return helper.JsonError(c, http.StatusBadRequest, "unknown EMI plan id")
	}

	quote, err := service.ComputePlan(in.FeeAmountINR, duration)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeeAmount) || errors.Is(err, service.ErrUnknownDuration) {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "quote", quote)
}
