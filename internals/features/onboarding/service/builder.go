package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	planService "feesetu_backend/internals/features/emi/plans/service"
	institutionModel "feesetu_backend/internals/features/institutions/model"
	"feesetu_backend/internals/features/onboarding/dto"
	onboardingModel "feesetu_backend/internals/features/onboarding/model"
	studentModel "feesetu_backend/internals/features/students/model"
	parentModel "feesetu_backend/internals/features/users/parent/model"
	helper "feesetu_backend/internals/helpers"
)

// SubmitOnboarding runs the whole terms-step submission in ONE transaction.
// Every step is idempotent against the current persisted state, so the same
// payload twice yields exactly one Organization/Institution/Student/
// FeeStructure/FeeApplication. The caller validates the payload first; no
// partial writes happen on validation failure because nothing is written
// before the transaction opens.
func SubmitOnboarding(ctx context.Context, db *gorm.DB, parentUserID uuid.UUID, req *dto.OnboardingSubmitRequest) (*dto.OnboardingSubmitResponse, error) {
	// re-submission after completion is a hard conflict, checked before
	// the transaction so the common case costs one read
	var existing parentModel.ParentProfile
	err := db.WithContext(ctx).
		Where("parent_profile_user_id = ?", parentUserID).
		First(&existing).Error
	if err == nil && existing.ParentProfileIsOnboardingCompleted {
		return nil, fiber.NewError(fiber.StatusConflict, "onboarding already completed")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var resp dto.OnboardingSubmitResponse

	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) parent profile
		profile, err := getOrCreateProfile(tx, parentUserID)
		if err != nil {
			return err
		}
		if profile.ParentProfileIsOnboardingCompleted {
			return fiber.NewError(fiber.StatusConflict, "onboarding already completed")
		}

		// 2) institution (+ backing organization tenant)
		institution, err := getOrCreateInstitution(tx, req)
		if err != nil {
			return err
		}

		// 3) student, scoped by (parent, institution)
		student, err := upsertStudent(tx, parentUserID, institution.InstitutionID, req)
		if err != nil {
			return err
		}

		// 4) fee structure memo row
		feeStructure, err := getOrCreateFeeStructure(tx, institution.InstitutionID, req)
		if err != nil {
			return err
		}

		// 5) EMI plan (legacy ids normalized, catalog row synthesized)
		plan, err := planService.ResolvePlan(tx, req.EmiPlanID)
		if err != nil {
			if errors.Is(err, planService.ErrUnknownPlan) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return err
		}

		if !plan.AllowsAmount(req.FeeAmountINR) {
			return fiber.NewError(fiber.StatusBadRequest, "fee amount is outside this plan's eligibility range")
		}

		// 6) plan economics
		quote, err := planService.ComputePlan(req.FeeAmountINR, plan.EmiPlanDurationMonths)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// 7) application upsert keyed by student
		application, err := upsertApplication(tx, student.StudentID, feeStructure.FeeStructureID, plan.EmiPlanID, quote)
		if err != nil {
			return err
		}

		// 8) finalize profile + drop the draft
		if err := finalizeProfile(tx, profile, req); err != nil {
			return err
		}
		if err := tx.Where("onboarding_draft_parent_user_id = ?", parentUserID).
			Delete(&onboardingModel.OnboardingDraft{}).Error; err != nil {
			return err
		}

		resp = dto.OnboardingSubmitResponse{
			ParentProfile:  profile,
			Student:        student,
			FeeApplication: application,
			EmiSummary:     quote,
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			// two first-time submissions raced on a unique index; the
			// loser retries and hits the get path
			return nil, fiber.NewError(fiber.StatusConflict, "a concurrent submission created this record, retry")
		}
		return nil, txErr
	}
	return &resp, nil
}

func getOrCreateProfile(tx *gorm.DB, parentUserID uuid.UUID) (*parentModel.ParentProfile, error) {
	var profile parentModel.ParentProfile
	err := tx.Where("parent_profile_user_id = ?", parentUserID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	profile = parentModel.ParentProfile{ParentProfileUserID: parentUserID}
	if err := tx.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func getOrCreateInstitution(tx *gorm.DB, req *dto.OnboardingSubmitRequest) (*institutionModel.Institution, error) {
	name := strings.TrimSpace(req.InstitutionName)

	var institution institutionModel.Institution
	err := tx.Where("institution_name = ?", name).First(&institution).Error
	if err == nil {
		return &institution, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org := institutionModel.Organization{
		OrganizationName: name,
		OrganizationSlug: helper.GenerateSlug(name),
	}
	if err := tx.Create(&org).Error; err != nil {
		return nil, err
	}

	instType := req.InstitutionType
	if instType == "" {
		instType = institutionModel.InstitutionTypeSchool
	}
	boards := req.InstitutionBoards
	if len(boards) == 0 {
		boards = []string{"CBSE"} // an institution always carries ≥1 board
	}
	boardsJSON, err := boardsToJSON(boards)
	if err != nil {
		return nil, err
	}

	institution = institutionModel.Institution{
		InstitutionOrganizationID: org.OrganizationID,
		InstitutionName:           name,
		InstitutionType:           instType,
		InstitutionBoards:         boardsJSON,
	}
	if err := tx.Create(&institution).Error; err != nil {
		return nil, err
	}

	// ≥1 location, synthesized from whatever address text was supplied
	location := institutionModel.InstitutionLocation{
		LocationInstitutionID: institution.InstitutionID,
		LocationCity:          defaultIfEmpty(req.InstitutionCity, "unknown"),
		LocationState:         defaultIfEmpty(req.InstitutionState, "unknown"),
		LocationAddress:       defaultIfEmpty(req.InstitutionAddress, name),
	}
	if err := tx.Create(&location).Error; err != nil {
		return nil, err
	}

	return &institution, nil
}

func upsertStudent(tx *gorm.DB, parentUserID, institutionID uuid.UUID, req *dto.OnboardingSubmitRequest) (*studentModel.Student, error) {
	var student studentModel.Student
	err := tx.Where("student_parent_user_id = ? AND student_institution_id = ?", parentUserID, institutionID).
		First(&student).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		student = studentModel.Student{
			StudentParentUserID:  parentUserID,
			StudentInstitutionID: institutionID,
		}
	}

	student.StudentName = req.StudentName
	student.StudentRollNumber = req.StudentRollNumber
	student.StudentClassName = req.StudentClassName
	student.StudentSection = req.StudentSection
	student.StudentFeeAmountINR = req.FeeAmountINR
	student.StudentFeeType = defaultIfEmpty(req.FeeType, "tuition")

	if err := tx.Save(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func getOrCreateFeeStructure(tx *gorm.DB, institutionID uuid.UUID, req *dto.OnboardingSubmitRequest) (*institutionModel.FeeStructure, error) {
	name := defaultIfEmpty(req.FeeType, "tuition")
	year := helper.DeriveAcademicYear(time.Now())

	var fs institutionModel.FeeStructure
	err := tx.Where(
		"fee_structure_institution_id = ? AND fee_structure_name = ? AND fee_structure_academic_year = ?",
		institutionID, name, year,
	).First(&fs).Error
	if err == nil {
		return &fs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fs = institutionModel.FeeStructure{
		FeeStructureInstitutionID: institutionID,
		FeeStructureName:          name,
		FeeStructureAmountINR:     req.FeeAmountINR,
		FeeStructureAcademicYear:  year,
	}
	if err := tx.Create(&fs).Error; err != nil {
		return nil, err
	}
	return &fs, nil
}

func upsertApplication(tx *gorm.DB, studentID, feeStructureID, emiPlanID uuid.UUID, quote planService.PlanQuote) (*appModel.FeeApplication, error) {
	var app appModel.FeeApplication
	err := tx.Where("fee_application_student_id = ?", studentID).First(&app).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		app = appModel.FeeApplication{
			FeeApplicationStudentID: studentID,
			FeeApplicationStatus:    appModel.ApplicationStatusPlatformReview,
		}
	}

	app.FeeApplicationFeeStructureID = feeStructureID
	app.FeeApplicationEmiPlanID = &emiPlanID
	app.FeeApplicationTotalAmountINR = quote.TotalAmountINR
	app.FeeApplicationRemainingAmountINR = quote.TotalAmountINR
	app.FeeApplicationMonthlyInstallmentINR = quote.MonthlyInstallmentINR
	app.FeeApplicationProcessingFeeINR = quote.ProcessingFeeINR

	if err := tx.Save(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func finalizeProfile(tx *gorm.DB, profile *parentModel.ParentProfile, req *dto.OnboardingSubmitRequest) error {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dob")
	}

	profile.ParentProfileFullName = ptr(req.ParentName)
	profile.ParentProfilePhone = ptr(req.ParentPhone)
	profile.ParentProfilePAN = ptr(strings.ToUpper(req.ParentPAN))
	profile.ParentProfileApplicantPAN = ptr(strings.ToUpper(req.ApplicantPAN))
	profile.ParentProfileGender = ptr(req.Gender)
	profile.ParentProfileDOB = &dob
	profile.ParentProfileMaritalStatus = ptr(req.MaritalStatus)
	profile.ParentProfileFatherName = ptr(req.FatherName)
	profile.ParentProfileMotherName = ptr(req.MotherName)
	if req.AnnualIncomeINR > 0 {
		profile.ParentProfileAnnualIncomeINR = &req.AnnualIncomeINR
	}
	profile.ParentProfileConsentTerms = req.ConsentTerms
	profile.ParentProfileConsentCreditCheck = req.ConsentCreditCheck
	profile.ParentProfileConsentAutoDebit = req.ConsentAutoDebit
	profile.ParentProfileIsOnboardingCompleted = true

	return tx.Save(profile).Error
}

func boardsToJSON(boards []string) (datatypes.JSON, error) {
	b, err := json.Marshal(boards)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func defaultIfEmpty(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func ptr[T any](v T) *T { return &v }
