package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"feesetu_backend/internals/features/institutions/dto"
	"feesetu_backend/internals/features/institutions/model"
	authModel "feesetu_backend/internals/features/users/auth/model"
	helper "feesetu_backend/internals/helpers"
)

type InstitutionAdminController struct {
	DB *gorm.DB
}

// POST /api/a/institutions
//
// Tenant write and staff credential creation share ONE transaction: a
// failure on either side leaves neither behind. Admin-provisioned staff
// accounts are email-verified from the start.
func (ctl *InstitutionAdminController) Create(c *fiber.Ctx) error {
	var in dto.CreateInstitutionRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	name := strings.TrimSpace(in.Name)

	var institution model.Institution
	var staff authModel.UserModel

	txErr := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		org := model.Organization{
			OrganizationName: name,
			OrganizationSlug: helper.GenerateSlug(name),
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		instType := in.Type
		if instType == "" {
			instType = model.InstitutionTypeSchool
		}
		boards := in.Boards
		if len(boards) == 0 {
			boards = []string{"CBSE"}
		}
		boardsJSON, err := json.Marshal(boards)
		if err != nil {
			return err
		}

		institution = model.Institution{
			InstitutionOrganizationID: org.OrganizationID,
			InstitutionName:           name,
			InstitutionType:           instType,
			InstitutionBoards:         datatypes.JSON(boardsJSON),
		}
		if err := tx.Create(&institution).Error; err != nil {
			return err
		}

		location := model.InstitutionLocation{
			LocationInstitutionID: institution.InstitutionID,
			LocationCity:          defaultIfEmpty(in.City, "unknown"),
			LocationState:         defaultIfEmpty(in.State, "unknown"),
			LocationAddress:       defaultIfEmpty(in.Address, name),
		}
		if err := tx.Create(&location).Error; err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(in.StaffPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		staff = authModel.UserModel{
			UserName:          in.StaffUserName,
			Email:             strings.ToLower(strings.TrimSpace(in.StaffEmail)),
			Password:          string(hashed),
			Role:              authModel.RoleInstitution,
			UserInstitutionID: &institution.InstitutionID,
			IsActive:          true,
			IsEmailVerified:   true,
		}
		return tx.Create(&staff).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, http.StatusConflict, "institution name or staff email already taken")
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonCreated(c, "institution created", fiber.Map{
		"institution": institution,
		"staff": fiber.Map{
			"id":        staff.ID,
			"user_name": staff.UserName,
			"email":     staff.Email,
			"role":      staff.Role,
		},
	})
}

// GET /api/a/institutions?page=&per_page=
func (ctl *InstitutionAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	db := ctl.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&model.Institution{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	var institutions []model.Institution
	if err := db.Preload("InstitutionLocations").
		Order("institution_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&institutions).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "institutions", institutions, &pagination)
}

// GET /api/a/institutions/:id
func (ctl *InstitutionAdminController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid institution id")
	}

	var institution model.Institution
	err = ctl.DB.WithContext(c.UserContext()).
		Preload("InstitutionLocations").
		Where("institution_id = ?", id).
		First(&institution).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, http.StatusNotFound, "institution not found")
	}
	if err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "institution", institution)
}

// GET /api/a/institutions/:id/fee-structures
func (ctl *InstitutionAdminController) ListFeeStructures(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid institution id")
	}

	var structures []model.FeeStructure
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("fee_structure_institution_id = ?", id).
		Order("fee_structure_academic_year DESC, fee_structure_name ASC").
		Find(&structures).Error; err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee structures", structures)
}

// POST /api/a/institutions/:id/fee-structures
func (ctl *InstitutionAdminController) CreateFeeStructure(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid institution id")
	}

	var in dto.CreateFeeStructureRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorMap(err))
	}

	year := in.AcademicYear
	if year == "" {
		year = helper.DeriveAcademicYear(time.Now())
	}

	fs := model.FeeStructure{
		FeeStructureInstitutionID: id,
		FeeStructureName:          in.Name,
		FeeStructureAmountINR:     in.AmountINR,
		FeeStructureAcademicYear:  year,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&fs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, http.StatusConflict, "fee structure already exists for this academic year")
		}
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fee structure created", fs)
}

func defaultIfEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
