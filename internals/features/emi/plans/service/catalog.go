package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"feesetu_backend/internals/features/emi/plans/model"
)

var ErrUnknownPlan = errors.New("unknown EMI plan id")

// legacyPlanKeys maps the plan identifiers the old UI shipped to canonical
// duration keys. Kept for backward compatibility with saved drafts.
var legacyPlanKeys = map[string]string{
	"plan-a": "9-months",
	"plan-b": "6-months",
	"plan-c": "12-months",
	"plan-d": "18-months",
	"plan-e": "24-months",
}

// NormalizePlanKey lowercases, trims and resolves legacy plan ids to the
// canonical "<n>-months" form.
func NormalizePlanKey(planID string) string {
	key := strings.ToLower(strings.TrimSpace(planID))
	if canonical, ok := legacyPlanKeys[key]; ok {
		return canonical
	}
	return key
}

// DurationFromPlanKey parses "<n>-months" → n.
func DurationFromPlanKey(key string) (int, bool) {
	rest, ok := strings.CutSuffix(key, "-months")
	if !ok {
		return 0, false
	}
	d, err := strconv.Atoi(rest)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// ResolvePlan finds the catalog row for a submitted plan id, normalizing
// legacy identifiers first. A canonical key with no row is synthesized on
// demand (the catalog is a memo table, not a gatekeeper); a key that does
// not name a catalog duration at all is ErrUnknownPlan.
func ResolvePlan(tx *gorm.DB, planID string) (*model.EmiPlan, error) {
	key := NormalizePlanKey(planID)

	var plan model.EmiPlan
	err := tx.Where("emi_plan_key = ?", key).First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	duration, ok := DurationFromPlanKey(key)
	if !ok || !model.IsCatalogDuration(duration) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}

	plan = model.EmiPlan{
		EmiPlanKey:              key,
		EmiPlanDurationMonths:   duration,
		EmiPlanInterestRateBps:  0,
		EmiPlanProcessingFeeBps: 200, // 2% per 3-month block
		EmiPlanMinAmountINR:     model.CatalogMinAmountINR,
		EmiPlanMaxAmountINR:     model.CatalogMaxAmountINR,
		EmiPlanIsActive:         true,
	}
	if err := tx.Create(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent synthesis, reread
			if err2 := tx.Where("emi_plan_key = ?", key).First(&plan).Error; err2 == nil {
				return &plan, nil
			}
		}
		return nil, err
	}
	return &plan, nil
}

// SeedCatalog inserts the fixed duration catalog if missing. Called at boot.
func SeedCatalog(db *gorm.DB) {
	for _, d := range model.CatalogDurations {
		key := model.PlanKeyForDuration(d)
		var count int64
		if err := db.Model(&model.EmiPlan{}).Where("emi_plan_key = ?", key).Count(&count).Error; err != nil {
			log.Printf("[ERROR] seed emi plan %s: %v", key, err)
			continue
		}
		if count > 0 {
			continue
		}
		plan := model.EmiPlan{
			EmiPlanKey:              key,
			EmiPlanDurationMonths:   d,
			EmiPlanInterestRateBps:  0,
			EmiPlanProcessingFeeBps: 200,
			EmiPlanMinAmountINR:     model.CatalogMinAmountINR,
			EmiPlanMaxAmountINR:     model.CatalogMaxAmountINR,
			EmiPlanIsActive:         true,
		}
		if err := db.Create(&plan).Error; err != nil {
			log.Printf("[ERROR] seed emi plan %s: %v", key, err)
		} else {
			log.Printf("✅ seeded emi plan %s", key)
		}
	}
}
