package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"feesetu_backend/internals/features/emi/applications/model"
	installmentModel "feesetu_backend/internals/features/emi/installments/model"
	installmentService "feesetu_backend/internals/features/emi/installments/service"
	planModel "feesetu_backend/internals/features/emi/plans/model"
	helper "feesetu_backend/internals/helpers"
)

type AdminApplicationController struct {
	DB *gorm.DB
}

// GET /api/a/applications?status=&page=&per_page=
func (ctl *AdminApplicationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.FeeApplication{})
	if status := c.Query("status"); status != "" {
		q = q.Where("fee_application_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var apps []model.FeeApplication
	if err := q.Order("fee_application_applied_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "applications", apps, &pagination)
}

// GET /api/a/applications/:id
func (ctl *AdminApplicationController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid application id")
	}

	var app model.FeeApplication
	err = ctl.DB.WithContext(c.UserContext()).
		Where("fee_application_id = ?", id).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "application not found")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var installments []installmentModel.Installment
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("installment_fee_application_id = ?", app.FeeApplicationID).
		Order("installment_number ASC").
		Find(&installments).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "application", fiber.Map{
		"application":  app,
		"installments": installments,
	})
}

// POST /api/a/applications/:id/approve
//
// Decision, timestamp and schedule generation are one transaction: either
// the application goes active with its full installment sequence or nothing
// changes.
func (ctl *AdminApplicationController) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid application id")
	}

	var app model.FeeApplication
	var rows []installmentModel.Installment

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_application_id = ?", id).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "application not found")
			}
			return err
		}
		if app.IsDecided() {
			return fiber.NewError(fiber.StatusConflict, "application already decided")
		}
		if app.FeeApplicationEmiPlanID == nil {
			return fiber.NewError(fiber.StatusConflict, "application has no EMI plan")
		}

		var plan planModel.EmiPlan
		if err := tx.Where("emi_plan_id = ?", app.FeeApplicationEmiPlanID).
			First(&plan).Error; err != nil {
			return err
		}

		now := time.Now()
		rows, err = installmentService.CreateScheduleTx(tx, &app, plan.EmiPlanDurationMonths, now)
		if err != nil {
			if errors.Is(err, installmentService.ErrScheduleAlreadyExists) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			if errors.Is(err, installmentService.ErrInvalidSchedule) {
				return fiber.NewError(fiber.StatusConflict, "application total is too small for the plan duration")
			}
			return err
		}

		app.FeeApplicationStatus = model.ApplicationStatusActive
		app.FeeApplicationApprovedAt = &now
		return tx.Save(&app).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonUpdated(c, "application approved", fiber.Map{
		"application":  app,
		"installments": rows,
	})
}

// POST /api/a/applications/:id/reject
func (ctl *AdminApplicationController) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid application id")
	}

	var app model.FeeApplication
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_application_id = ?", id).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "application not found")
			}
			return err
		}
		if app.IsDecided() {
			return fiber.NewError(fiber.StatusConflict, "application already decided")
		}
		app.FeeApplicationStatus = model.ApplicationStatusRejected
		return tx.Save(&app).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonUpdated(c, "application rejected", app)
}

// POST /api/a/applications/:id/pay-institution
//
// Platform settles the fee with the institution. Allowed once, only on an
// active application.
func (ctl *AdminApplicationController) PayInstitution(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid application id")
	}

	var app model.FeeApplication
	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_application_id = ?", id).
			First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "application not found")
			}
			return err
		}
		if app.FeeApplicationPlatformPaidToInstitution {
			return fiber.NewError(fiber.StatusConflict, "institution already paid")
		}
		if app.FeeApplicationStatus != model.ApplicationStatusActive &&
			app.FeeApplicationStatus != model.ApplicationStatusApproved {
			return fiber.NewError(fiber.StatusConflict, "application is not active")
		}
		app.FeeApplicationStatus = model.ApplicationStatusPaidToInstitution
		app.FeeApplicationPlatformPaidToInstitution = true
		return tx.Save(&app).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonUpdated(c, "institution paid", app)
}
