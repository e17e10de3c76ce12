package validation

import (
	"fmt"
	"strconv"
)

func requiredMessage(label string) string {
	return fmt.Sprintf("%s is required", label)
}

func minLengthMessage(label string, min int) string {
	return fmt.Sprintf("%s must be at least %d characters", label, min)
}

func maxLengthMessage(label string, max int) string {
	return fmt.Sprintf("%s must be at most %d characters", label, max)
}

func patternMessage(label string) string {
	return fmt.Sprintf("%s format is invalid", label)
}

func numberMessage(label string) string {
	return fmt.Sprintf("%s must be a valid number", label)
}

func wholeNumberMessage(label string) string {
	return fmt.Sprintf("%s must be a whole number", label)
}

func minimumMessage(label string, min float64) string {
	return fmt.Sprintf("%s must be at least %s", label, formatBound(min))
}

func maximumMessage(label string, max float64) string {
	return fmt.Sprintf("%s must be at most %s", label, formatBound(max))
}

func decimalsMessage(label string, decimals int) string {
	return fmt.Sprintf("%s must have at most %d decimal places", label, decimals)
}

func dateMessage(label string) string {
	return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label)
}

func dateTimeMessage(label string) string {
	return fmt.Sprintf("%s must be a valid date and time", label)
}

func timeMessage(label string) string {
	return fmt.Sprintf("%s must be a valid time", label)
}

func booleanMessage(label string) string {
	return fmt.Sprintf("%s must be yes or no", label)
}

func tooManyEntriesMessage(label string, max int) string {
	return fmt.Sprintf("%s cannot have more than %d entries", label, max)
}

func entryMessage(index int, message string) string {
	return fmt.Sprintf("Entry %d: %s", index+1, message)
}

func formatBound(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
