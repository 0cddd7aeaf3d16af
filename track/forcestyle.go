package track

import (
	"fmt"
	"strconv"
	"strings"
)

// ProcessForceStyle applies overrides of the form "[Style.]Param=Value".
// Without a style prefix, script-wide parameters (PlayResX, PlayResY,
// WrapStyle, ScaledBorderAndShadow, Kerning, Language) are set, and other
// parameters apply to every style. Malformed entries are skipped and
// reported in the returned error; the remaining entries still apply.
func (t *Track) ProcessForceStyle(overrides []string) error {
	var errs []string
	for _, o := range overrides {
		if err := t.forceOne(o); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrBadOverride, strings.Join(errs, "; "))
	}
	return nil
}

func (t *Track) forceOne(o string) error {
	key, value, ok := strings.Cut(o, "=")
	if !ok {
		return fmt.Errorf("%q: missing '='", o)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	styleName := ""
	if dot := strings.LastIndexByte(key, '.'); dot >= 0 {
		styleName, key = key[:dot], key[dot+1:]
	}

	if styleName == "" {
		handled, err := t.forceScript(key, value)
		if handled || err != nil {
			return err
		}
	}

	matched := false
	for _, s := range t.styles {
		if s == nil || (styleName != "" && !strings.EqualFold(s.Name, styleName)) {
			continue
		}
		if err := setStyleField(s, key, value); err != nil {
			return fmt.Errorf("%q: %w", o, err)
		}
		matched = true
	}
	if !matched && styleName != "" {
		return fmt.Errorf("%q: no style named %q", o, styleName)
	}
	return nil
}

func (t *Track) forceScript(key, value string) (bool, error) {
	var dst *int
	switch strings.ToLower(key) {
	case "playresx":
		dst = &t.PlayResX
	case "playresy":
		dst = &t.PlayResY
	case "layoutresx":
		dst = &t.LayoutResX
	case "layoutresy":
		dst = &t.LayoutResY
	case "wrapstyle":
		dst = &t.WrapStyle
	case "scaledborderandshadow":
		t.ScaledBorderAndShadow = parseBool(value)
		return true, nil
	case "kerning":
		t.Kerning = parseBool(value)
		return true, nil
	case "language":
		t.Language = value
		return true, nil
	default:
		return false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return true, fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return true, nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "1":
		return true
	}
	return false
}

func setStyleField(s *Style, key, value string) error {
	num := func() (float64, error) { return strconv.ParseFloat(value, 64) }
	integer := func() (int, error) {
		f, err := num()
		return int(f), err
	}
	color := func(dst *Color) error {
		c, ok := ParseColor(value)
		if !ok {
			return fmt.Errorf("bad colour %q", value)
		}
		*dst = c
		return nil
	}
	flag := func(dst *bool) error {
		n, err := integer()
		*dst = n != 0
		return err
	}
	float := func(dst *float64, div float64) error {
		f, err := num()
		*dst = f / div
		return err
	}
	intField := func(dst *int) error {
		n, err := integer()
		*dst = n
		return err
	}

	switch strings.ToLower(key) {
	case "fontname":
		s.FontName = value
		return nil
	case "primarycolour":
		return color(&s.PrimaryColour)
	case "secondarycolour":
		return color(&s.SecondaryColour)
	case "outlinecolour", "tertiarycolour":
		return color(&s.OutlineColour)
	case "backcolour":
		return color(&s.BackColour)
	case "fontsize":
		return float(&s.FontSize, 1)
	case "bold":
		return intField(&s.Bold)
	case "italic":
		return flag(&s.Italic)
	case "underline":
		return flag(&s.Underline)
	case "strikeout":
		return flag(&s.StrikeOut)
	case "spacing":
		return float(&s.Spacing, 1)
	case "angle":
		return float(&s.Angle, 1)
	case "borderstyle":
		return intField(&s.BorderStyle)
	case "alignment":
		return intField(&s.Alignment)
	case "justify":
		return intField(&s.Justify)
	case "marginl":
		return intField(&s.MarginL)
	case "marginr":
		return intField(&s.MarginR)
	case "marginv":
		return intField(&s.MarginV)
	case "encoding":
		return intField(&s.Encoding)
	case "scalex":
		return float(&s.ScaleX, 100)
	case "scaley":
		return float(&s.ScaleY, 100)
	case "outline":
		return float(&s.Outline, 1)
	case "shadow":
		return float(&s.Shadow, 1)
	case "blur":
		return float(&s.Blur, 1)
	}
	return fmt.Errorf("unknown parameter %q", key)
}
