package patient

import "time"

// AgeGroup is a coarse clinical age bucket derived from the birth date.
// It is recomputed on every create and update, never trusted from input.
type AgeGroup string

const (
	GroupRecienNacido       AgeGroup = "Recién nacido"
	GroupLactanteTemprano   AgeGroup = "Lactante temprano"
	GroupLactanteMayor      AgeGroup = "Lactante mayor"
	GroupNinoPequeno        AgeGroup = "Niño pequeño"
	GroupPreescolarTemprano AgeGroup = "Preescolar temprano"
	GroupPreescolarTardio   AgeGroup = "Preescolar tardío"
	GroupAdulto             AgeGroup = "Adulto"
)

// AgeGroupAt classifies a birth date by age in whole months at the given
// reference time. Buckets are closed on the upper end: exactly 3 months is
// still "Recién nacido". A birth date in the future yields a negative month
// count and falls into the first bucket.
func AgeGroupAt(birth, now time.Time) AgeGroup {
	months := ageInMonths(birth, now)

	switch {
	case months <= 3:
		return GroupRecienNacido
	case months <= 6:
		return GroupLactanteTemprano
	case months <= 12:
		return GroupLactanteMayor
	case months <= 36:
		return GroupNinoPequeno
	case months <= 72:
		return GroupPreescolarTemprano
	case months <= 180:
		return GroupPreescolarTardio
	default:
		return GroupAdulto
	}
}

// AgeGroupFor classifies a birth date against the current clock.
func AgeGroupFor(birth time.Time) AgeGroup {
	return AgeGroupAt(birth, time.Now())
}

func ageInMonths(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	return months
}
