package backlog

import "math"

// RoundTo rounds v to the given number of decimal places, halves away from zero.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Efficiency is rating per hour to beat, rounded to two decimals. It is nil unless both
// inputs are present and hours is strictly positive.
func Efficiency(rating *int, hours *float64) *float64 {
	if rating == nil || hours == nil || *hours <= 0 {
		return nil
	}
	value := RoundTo(float64(*rating)/(*hours), 2)
	return &value
}

// RoundRating converts a 0-100 catalog rating to the nearest integer.
func RoundRating(rating *float64) *int {
	if rating == nil {
		return nil
	}
	value := int(math.Round(*rating))
	return &value
}
