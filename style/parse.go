package style

import (
	"strconv"
	"strings"

	"github.com/mortencombat/stretchable/errors"
)

// ParseLength parses a human-readable length: "auto", "min-content",
// "max-content", a bare number or "12pt" (points), "50%" (percent), or
// "1fr" (grid fraction). It is a convenience for demos and tests; the
// boundary itself only speaks tagged records.
func ParseLength(s string) (Length, error) {
	switch t := strings.TrimSpace(strings.ToLower(s)); t {
	case "auto":
		return Auto(), nil
	case "min-content":
		return MinContent(), nil
	case "max-content":
		return MaxContent(), nil
	default:
		return parseNumeric(t)
	}
}

func parseNumeric(t string) (Length, error) {
	mk := Points
	switch {
	case strings.HasSuffix(t, "%"):
		t = strings.TrimSuffix(t, "%")
		mk = func(v float32) Length { return Percent(v / 100) }
	case strings.HasSuffix(t, "fr"):
		t = strings.TrimSuffix(t, "fr")
		mk = Fraction
	case strings.HasSuffix(t, "pt"):
		t = strings.TrimSuffix(t, "pt")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(t), 32)
	if err != nil {
		return Length{}, &errors.Error{
			Phase:  errors.PhaseDecode,
			Kind:   errors.KindInvalidInput,
			Detail: "cannot parse length " + strconv.Quote(t),
			Cause:  err,
		}
	}
	return mk(float32(v)), nil
}
