package utils

import "math"

// Monetary amounts are stored as integer kobo (minor units) and
// weights as integer grams; floats only exist at the API boundary.

// NairaToKobo converts a naira amount to kobo, rounding to the nearest
// kobo.
func NairaToKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}

// KoboToNaira converts kobo to a naira amount.
func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / 100
}

// KgToGrams converts kilograms to grams, rounding to the nearest gram.
func KgToGrams(kg float64) int64 {
	return int64(math.Round(kg * 1000))
}

// GramsToKg converts grams to kilograms.
func GramsToKg(grams int64) float64 {
	return float64(grams) / 1000
}
