package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/emi/applications/model"
	"feesetu_backend/internals/features/emi/applications/service"
	installmentModel "feesetu_backend/internals/features/emi/installments/model"
	installmentService "feesetu_backend/internals/features/emi/installments/service"
	"feesetu_backend/internals/features/onboarding/dto"
	studentModel "feesetu_backend/internals/features/students/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
	helper "feesetu_backend/internals/helpers"
	helperAuth "feesetu_backend/internals/helpers/auth"
)

type ParentApplicationController struct {
	DB *gorm.DB
}

// GET /api/p/dashboard
//
// Everything the parent landing page needs in one response. The status
// projection and next-step are derived on read, never read from storage.
func (ctl *ParentApplicationController) Dashboard(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())

	var profile *parentModel.ParentProfile
	{
		var p parentModel.ParentProfile
		err := db.Where("parent_profile_user_id = ?", userID).First(&p).Error
		if err == nil {
			profile = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}

	var student *studentModel.Student
	{
		var s studentModel.Student
		err := db.Where("student_parent_user_id = ?", userID).
			Order("student_created_at DESC").First(&s).Error
		if err == nil {
			student = &s
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}

	var app *model.FeeApplication
	var installments []installmentModel.Installment
	if student != nil {
		var a model.FeeApplication
		err := db.Where("fee_application_student_id = ?", student.StudentID).First(&a).Error
		if err == nil {
			app = &a
			if err := db.Where("installment_fee_application_id = ?", a.FeeApplicationID).
				Order("installment_number ASC").
				Find(&installments).Error; err != nil {
				return helper.JsonError(c, http.StatusInternalServerError, err.Error())
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, http.StatusInternalServerError, err.Error())
		}
	}

	isCompleted := profile != nil && profile.ParentProfileIsOnboardingCompleted
	hasPlan := app != nil && app.FeeApplicationEmiPlanID != nil
	nextStep := service.NextStep(profile, student, app)

	resp := dto.DashboardResponse{
		Projection:   service.Project(app, isCompleted, hasPlan, nextStep),
		NextStep:     nextStep,
		Student:      student,
		Application:  app,
		Installments: installments,
		OverdueCount: installmentService.OverdueCount(installments, time.Now()),
	}
	return helper.JsonOK(c, "dashboard", resp)
}

// GET /api/p/applications/me
func (ctl *ParentApplicationController) MyApplication(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	db := ctl.DB.WithContext(c.UserContext())

	var student studentModel.Student
	err = db.Where("student_parent_user_id = ?", userID).
		Order("student_created_at DESC").First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "no application yet")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var app model.FeeApplication
	err = db.Where("fee_application_student_id = ?", student.StudentID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "no application yet")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "application", fiber.Map{
		"student":     student,
		"application": app,
	})
}
