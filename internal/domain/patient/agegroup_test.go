package patient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeGroupBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		birth time.Time
		want  AgeGroup
	}{
		{"born today", now, GroupRecienNacido},
		{"exactly 3 months", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), GroupRecienNacido},
		// Buckets count whole months: they advance only at the next
		// month anniversary, never mid-month.
		{"day before the 4-month anniversary", time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC), GroupRecienNacido},
		{"4-month anniversary", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), GroupLactanteTemprano},
		{"exactly 6 months", time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), GroupLactanteTemprano},
		{"exactly 12 months", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), GroupLactanteMayor},
		{"day before the 13-month anniversary", time.Date(2023, 5, 16, 0, 0, 0, 0, time.UTC), GroupLactanteMayor},
		{"13-month anniversary", time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), GroupNinoPequeno},
		{"exactly 36 months", time.Date(2021, 6, 15, 0, 0, 0, 0, time.UTC), GroupNinoPequeno},
		{"exactly 72 months", time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC), GroupPreescolarTemprano},
		{"exactly 180 months", time.Date(2009, 6, 15, 0, 0, 0, 0, time.UTC), GroupPreescolarTardio},
		{"day before the 181-month anniversary", time.Date(2009, 5, 16, 0, 0, 0, 0, time.UTC), GroupPreescolarTardio},
		{"181-month anniversary", time.Date(2009, 5, 15, 0, 0, 0, 0, time.UTC), GroupAdulto},
		{"adult", time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), GroupAdulto},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AgeGroupAt(tc.birth, now))
		})
	}
}

func TestAgeGroupDayOfMonthAdjustment(t *testing.T) {
	// A birthday later in the month than "now" has not completed the
	// current month yet.
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	birth := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, ageInMonths(birth, now))

	sameDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, ageInMonths(sameDay, now))
}

func TestAgeGroupFutureBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	assert.Equal(t, GroupRecienNacido, AgeGroupAt(future, now))
}

func TestAgeGroupStableAcrossTimeOfDay(t *testing.T) {
	birth := time.Date(2020, 2, 29, 23, 59, 0, 0, time.UTC)
	morning := time.Date(2024, 6, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, AgeGroupAt(birth, morning), AgeGroupAt(birth, evening))
}
