package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appModel "feesetu_backend/internals/features/emi/applications/model"
	planService "feesetu_backend/internals/features/emi/plans/service"
	"feesetu_backend/internals/features/onboarding/dto"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return db, mock
}

func submitFixture() dto.OnboardingSubmitRequest {
	return dto.OnboardingSubmitRequest{
		StudentName:       "Kiran Verma",
		StudentRollNumber: "17",
		StudentClassName:  "VII",
		StudentSection:    "B",
		InstitutionName:   "Delhi Public School",
		InstitutionType:   "school",
		FeeAmountINR:      120000,
		FeeType:           "tuition",
		EmiPlanID:         "plan-a",
		ParentName:        "Asha Verma",
		ParentPAN:         "ABCDE1234F",
		ApplicantPAN:      "FGHIJ5678K",
		ParentPhone:       "+919876543210",
		ParentEmail:       "asha@example.com",
		Gender:            "female",
		DOB:               "1985-04-12",
		MaritalStatus:     "married",
		FatherName:        "Ram Verma",
		MotherName:        "Sita Verma",

		ConsentTerms:       true,
		ConsentCreditCheck: true,
		ConsentAutoDebit:   true,
	}
}

func TestSubmitOnboardingConflictAfterCompletion(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	// completed profile short-circuits before any transaction opens; the
	// only statement the mock allows is the profile read
	mock.ExpectQuery(`SELECT \* FROM "parent_profiles"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"parent_profile_id", "parent_profile_user_id", "parent_profile_is_onboarding_completed",
		}).AddRow(uuid.New().String(), userID.String(), true))

	req := submitFixture()
	_, err := SubmitOnboarding(context.Background(), db, userID, &req)

	var ferr *fiber.Error
	if !errors.As(err, &ferr) || ferr.Code != fiber.StatusConflict {
		t.Fatalf("err = %v, want 409 conflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database traffic after conflict: %v", err)
	}
}

func TestUpsertStudentUpdatesInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	parentID, institutionID, studentID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "students"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"student_id", "student_parent_user_id", "student_institution_id",
			"student_name", "student_fee_amount_inr",
		}).AddRow(studentID.String(), parentID.String(), institutionID.String(), "Old Name", 90000))
	mock.ExpectExec(`UPDATE "students" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	req := submitFixture()
	student, err := upsertStudent(db, parentID, institutionID, &req)
	if err != nil {
		t.Fatal(err)
	}
	if student.StudentID != studentID {
		t.Errorf("student id = %s, want existing %s", student.StudentID, studentID)
	}
	if student.StudentName != req.StudentName {
		t.Errorf("name = %q, want %q", student.StudentName, req.StudentName)
	}
	if student.StudentFeeAmountINR != req.FeeAmountINR {
		t.Errorf("fee = %d, want %d", student.StudentFeeAmountINR, req.FeeAmountINR)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected select + update only: %v", err)
	}
}

func TestUpsertApplicationUpdatesInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	studentID, feeStructureID, planID, applicationID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	quote, err := planService.ComputePlan(120000, 9)
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectQuery(`SELECT \* FROM "fee_applications"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"fee_application_id", "fee_application_student_id", "fee_application_status",
		}).AddRow(applicationID.String(), studentID.String(), appModel.ApplicationStatusPlatformReview))
	mock.ExpectExec(`UPDATE "fee_applications" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	app, err := upsertApplication(db, studentID, feeStructureID, planID, quote)
	if err != nil {
		t.Fatal(err)
	}
	if app.FeeApplicationID != applicationID {
		t.Errorf("application id = %s, want existing %s", app.FeeApplicationID, applicationID)
	}
	if app.FeeApplicationStatus != appModel.ApplicationStatusPlatformReview {
		t.Errorf("status = %q, want unchanged platform_review", app.FeeApplicationStatus)
	}
	if app.FeeApplicationTotalAmountINR != quote.TotalAmountINR {
		t.Errorf("total = %d, want %d", app.FeeApplicationTotalAmountINR, quote.TotalAmountINR)
	}
	if app.FeeApplicationRemainingAmountINR != quote.TotalAmountINR {
		t.Errorf("remaining = %d, want %d", app.FeeApplicationRemainingAmountINR, quote.TotalAmountINR)
	}
	if app.FeeApplicationEmiPlanID == nil || *app.FeeApplicationEmiPlanID != planID {
		t.Errorf("plan id = %v, want %s", app.FeeApplicationEmiPlanID, planID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expected select + update only: %v", err)
	}
}

func TestSubmitOnboardingRejectsIneligibleFee(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	planID := uuid.New()
	institutionID := uuid.New()

	// fresh profile, known institution, existing student; the resolved plan
	// carries the catalog bounds so a below-minimum fee aborts the
	// transaction before any economics are written
	mock.ExpectQuery(`SELECT \* FROM "parent_profiles"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"parent_profile_id", "parent_profile_user_id", "parent_profile_is_onboarding_completed",
		}).AddRow(uuid.New().String(), userID.String(), false))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "parent_profiles"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"parent_profile_id", "parent_profile_user_id", "parent_profile_is_onboarding_completed",
		}).AddRow(uuid.New().String(), userID.String(), false))
	mock.ExpectQuery(`SELECT \* FROM "institutions"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"institution_id", "institution_name", "institution_type",
		}).AddRow(institutionID.String(), "Delhi Public School", "school"))
	mock.ExpectQuery(`SELECT \* FROM "students"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"student_id", "student_parent_user_id", "student_institution_id", "student_name",
		}).AddRow(uuid.New().String(), userID.String(), institutionID.String(), "Kiran Verma"))
	mock.ExpectExec(`UPDATE "students" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "fee_structures"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"fee_structure_id", "fee_structure_institution_id", "fee_structure_name",
		}).AddRow(uuid.New().String(), institutionID.String(), "tuition"))
	mock.ExpectQuery(`SELECT \* FROM "emi_plans"`).WillReturnRows(
		sqlmock.NewRows([]string{
			"emi_plan_id", "emi_plan_key", "emi_plan_duration_months",
			"emi_plan_min_amount_inr", "emi_plan_max_amount_inr",
		}).AddRow(planID.String(), "9-months", 9, 10000, 2000000))
	mock.ExpectRollback()

	req := submitFixture()
	req.FeeAmountINR = 5000

	_, err := SubmitOnboarding(context.Background(), db, userID, &req)
	var ferr *fiber.Error
	if !errors.As(err, &ferr) || ferr.Code != fiber.StatusBadRequest {
		t.Fatalf("err = %v, want 400 for ineligible fee", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction must roll back at eligibility check: %v", err)
	}
}
