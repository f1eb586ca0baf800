package helper

import (
	"fmt"
	"time"
)

// DeriveAcademicYear builds the "YYYY-(YYYY+1)" label a synthesized fee
// structure is filed under, from the calendar year of t.
func DeriveAcademicYear(t time.Time) string {
	y := t.Year()
	return fmt.Sprintf("%d-%d", y, y+1)
}
