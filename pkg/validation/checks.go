package validation

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/model"
)

// scalarCheck validates one non-empty scalar lexeme against a descriptor and
// returns a message, or "" when the value passes.
type scalarCheck func(e *Engine, field model.Field, value string) string

// scalarChecks is the single dispatch table over the closed ValueType set.
// Group has no scalar rule; its entry exists so table coverage stays total
// and tests can assert exhaustiveness.
func scalarChecks() map[model.ValueType]scalarCheck {
	return map[model.ValueType]scalarCheck{
		model.ValueTypeString:      checkText,
		model.ValueTypeText:        checkText,
		model.ValueTypeTextarea:    checkText,
		model.ValueTypePassword:    checkText,
		model.ValueTypeColor:       checkText,
		model.ValueTypeFile:        checkText,
		model.ValueTypeImage:       checkText,
		model.ValueTypeReference:   checkText,
		model.ValueTypeDropdown:    checkText,
		model.ValueTypeSelect:      checkText,
		model.ValueTypeRadio:       checkText,
		model.ValueTypeMultiselect: checkText,
		model.ValueTypeEmail:       checkEmail,
		model.ValueTypeTel:         checkTel,
		model.ValueTypeURL:         checkURL,
		model.ValueTypeInteger:     checkNumeric,
		model.ValueTypeDecimal:     checkNumeric,
		model.ValueTypeAmount:      checkNumeric,
		model.ValueTypeDate:        checkDate,
		model.ValueTypeDateTime:    checkDateTime,
		model.ValueTypeTime:        checkTime,
		model.ValueTypeBoolean:     checkBoolean,
		model.ValueTypeGroup:       nil,
	}
}

func checkText(e *Engine, field model.Field, value string) string {
	if msg := checkLength(field, value); msg != "" {
		return msg
	}
	return e.checkPattern(field, value)
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func checkEmail(e *Engine, field model.Field, value string) string {
	if msg := checkLength(field, value); msg != "" {
		return msg
	}
	if !emailPattern.MatchString(value) {
		return patternMessage(field.Label)
	}
	return e.checkPattern(field, value)
}

var anyDigitPattern = regexp.MustCompile(`\d`)

// checkTel applies the field's own pattern when one is declared; otherwise a
// phone number just needs to contain a digit somewhere.
func checkTel(e *Engine, field model.Field, value string) string {
	if msg := checkLength(field, value); msg != "" {
		return msg
	}
	if field.Pattern != "" {
		return e.checkPattern(field, value)
	}
	if !anyDigitPattern.MatchString(value) {
		return patternMessage(field.Label)
	}
	return ""
}

func checkURL(e *Engine, field model.Field, value string) string {
	if msg := checkLength(field, value); msg != "" {
		return msg
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return patternMessage(field.Label)
	}
	return e.checkPattern(field, value)
}

func checkNumeric(e *Engine, field model.Field, value string) string {
	_ = e
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return numberMessage(field.Label)
	}
	if field.Type == model.ValueTypeInteger && strings.ContainsAny(value, ".eE") {
		return wholeNumberMessage(field.Label)
	}
	if field.Bounds.Minimum != nil && parsed < *field.Bounds.Minimum {
		return minimumMessage(field.Label, *field.Bounds.Minimum)
	}
	if field.Bounds.Maximum != nil && parsed > *field.Bounds.Maximum {
		return maximumMessage(field.Label, *field.Bounds.Maximum)
	}
	if field.Bounds.Decimals != nil {
		// Exact decimal-places matching on the lexeme; values are never
		// rounded into compliance.
		if fractionDigits(value) > *field.Bounds.Decimals {
			return decimalsMessage(field.Label, *field.Bounds.Decimals)
		}
	}
	return ""
}

func fractionDigits(value string) int {
	// Measure the mantissa only; an exponent suffix is not a fraction digit.
	if exp := strings.IndexAny(value, "eE"); exp >= 0 {
		value = value[:exp]
	}
	dot := strings.IndexByte(value, '.')
	if dot < 0 {
		return 0
	}
	return len(value) - dot - 1
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func checkDate(e *Engine, field model.Field, value string) string {
	_ = e
	if !datePattern.MatchString(value) {
		return dateMessage(field.Label)
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return dateMessage(field.Label)
	}
	return ""
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func checkDateTime(e *Engine, field model.Field, value string) string {
	_ = e
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return ""
		}
	}
	return dateTimeMessage(field.Label)
}

var timeLayouts = []string{"15:04:05", "15:04"}

func checkTime(e *Engine, field model.Field, value string) string {
	_ = e
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return ""
		}
	}
	return timeMessage(field.Label)
}

func checkBoolean(e *Engine, field model.Field, value string) string {
	_ = e
	switch strings.ToLower(value) {
	case "true", "false", "yes", "no", "y", "n", "1", "0":
		return ""
	default:
		return booleanMessage(field.Label)
	}
}

func checkLength(field model.Field, value string) string {
	length := len([]rune(value))
	if field.Bounds.MinLength != nil && length < *field.Bounds.MinLength {
		return minLengthMessage(field.Label, *field.Bounds.MinLength)
	}
	if field.Bounds.MaxLength != nil && length > *field.Bounds.MaxLength {
		return maxLengthMessage(field.Label, *field.Bounds.MaxLength)
	}
	return ""
}

// checkPattern applies the field's declared expression. A pattern that does
// not compile is logged and treated as always passing; user input is never
// blamed for a schema defect.
func (e *Engine) checkPattern(field model.Field, value string) string {
	if field.Pattern == "" {
		return ""
	}
	compiled, err := regexp.Compile(field.Pattern)
	if err != nil {
		e.logger.Warn("validation: malformed field pattern ignored",
			zap.String("field", field.Key), zap.String("pattern", field.Pattern), zap.Error(err))
		return ""
	}
	if !compiled.MatchString(value) {
		return patternMessage(field.Label)
	}
	return ""
}
