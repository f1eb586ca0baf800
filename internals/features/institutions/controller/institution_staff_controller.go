package controller

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	"feesetu_backend/internals/features/institutions/model"
	studentModel "feesetu_backend/internals/features/students/model"
	helper "feesetu_backend/internals/helpers"
	helperAuth "feesetu_backend/internals/helpers/auth"
)

// InstitutionStaffController serves the institution-scoped read surface.
// Scope always comes from the JWT, never from request input.
type InstitutionStaffController struct {
	DB *gorm.DB
}

// GET /api/i/profile
func (ctl *InstitutionStaffController) Profile(c *fiber.Ctx) error {
	institutionID, err := helperAuth.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var institution model.Institution
	err = ctl.DB.WithContext(c.UserContext()).
		Preload("InstitutionLocations").
		Where("institution_id = ?", institutionID).
		First(&institution).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "institution not found")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "institution", institution)
}

// GET /api/i/fee-structures
func (ctl *InstitutionStaffController) FeeStructures(c *fiber.Ctx) error {
	institutionID, err := helperAuth.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.FeeStructure
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("fee_structure_institution_id = ?", institutionID).
		Order("fee_structure_academic_year DESC, fee_structure_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee structures", rows)
}

// GET /api/i/students?page=&per_page=
func (ctl *InstitutionStaffController) Students(c *fiber.Ctx) error {
	institutionID, err := helperAuth.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)
	db := ctl.DB.WithContext(c.UserContext())

	q := db.Model(&studentModel.Student{}).
		Where("student_institution_id = ?", institutionID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var students []studentModel.Student
	if err := q.Order("student_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "students", students, &pagination)
}

// GET /api/i/applications?status=&page=&per_page=
func (ctl *InstitutionStaffController) Applications(c *fiber.Ctx) error {
	institutionID, err := helperAuth.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)
	db := ctl.DB.WithContext(c.UserContext())

	q := db.Model(&appModel.FeeApplication{}).
		Joins("JOIN students ON students.student_id = fee_applications.fee_application_student_id").
		Where("students.student_institution_id = ?", institutionID)
	if status := c.Query("status"); status != "" {
		q = q.Where("fee_application_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var apps []appModel.FeeApplication
	if err := q.Order("fee_application_applied_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&apps).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "applications", apps, &pagination)
}
