// Package tokentype parses and formats the composite token-type labels
// used across the cap table, of the form "Name (SYM) - ERC-20". Parsing is
// deliberately best-effort: malformed input is never rejected, it degrades
// to treating the whole string as the name.
package tokentype

import "strings"

// Standards is the fixed enumeration of recognized token standards, in
// stored (hyphenated) form.
var Standards = []string{"ERC-20", "ERC-721", "ERC-1155", "ERC-1400", "ERC-3525", "ERC-4626"}

// Descriptor is the derived token identity. Standard is held in stored
// (hyphenated) form; it is empty when neither the label nor the explicit
// standard column carried one.
type Descriptor struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Standard string `json:"standard"`
}

// Parse extracts {name, symbol, standard} from a composite label.
// Symbol and standard are optional; name falls back to the trimmed raw
// input when nothing else matches.
func Parse(label string) Descriptor {
	d := Descriptor{}
	s := strings.TrimSpace(label)

	// Trailing " - <standard>" suffix, recognized in hyphenated or
	// compact spelling.
	if idx := strings.LastIndex(s, " - "); idx >= 0 {
		tail := strings.TrimSpace(s[idx+3:])
		if std := Stored(tail); IsStandard(std) {
			d.Standard = std
			s = strings.TrimSpace(s[:idx])
		}
	}

	// Trailing "(symbol)" parenthetical.
	if strings.HasSuffix(s, ")") {
		if open := strings.LastIndex(s, "("); open >= 0 {
			d.Symbol = strings.TrimSpace(s[open+1 : len(s)-1])
			s = strings.TrimSpace(s[:open])
		}
	}

	d.Name = s
	if d.Name == "" {
		d.Name = strings.TrimSpace(label)
	}
	return d
}

// Normalize parses a label and applies the explicit standard column as a
// fallback when the label itself carries no standard suffix.
func Normalize(label, storedStandard string) Descriptor {
	d := Parse(label)
	if d.Standard == "" && storedStandard != "" {
		d.Standard = Stored(storedStandard)
	}
	return d
}

// Label re-renders the composite display form, omitting the parts the
// descriptor does not have.
func (d Descriptor) Label() string {
	var b strings.Builder
	b.WriteString(d.Name)
	if d.Symbol != "" {
		b.WriteString(" (")
		b.WriteString(d.Symbol)
		b.WriteString(")")
	}
	if d.Standard != "" {
		b.WriteString(" - ")
		b.WriteString(d.Standard)
	}
	return b.String()
}

// IsStandard reports whether s (in stored form) is one of the recognized
// token standards.
func IsStandard(s string) bool {
	for _, std := range Standards {
		if s == std {
			return true
		}
	}
	return false
}

// Compact converts a stored standard to its compact display form:
// "ERC-20" -> "ERC20". Non-ERC values pass through unchanged.
func Compact(s string) string {
	up := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(up, "ERC") {
		return up
	}
	rest := strings.ReplaceAll(strings.TrimPrefix(up, "ERC"), "-", "")
	if !isDigits(rest) {
		return up
	}
	return "ERC" + rest
}

// Stored converts a compact standard to its stored (hyphenated) form:
// "ERC20" -> "ERC-20". If the remainder after stripping "ERC" is purely
// numeric the canonical "ERC-<digits>" is reconstructed; anything else
// passes through upper-cased.
func Stored(s string) string {
	up := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(up, "ERC") {
		return up
	}
	rest := strings.ReplaceAll(strings.TrimPrefix(up, "ERC"), "-", "")
	if !isDigits(rest) {
		return up
	}
	return "ERC-" + rest
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
