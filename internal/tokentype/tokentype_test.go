package tokentype

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Descriptor
	}{
		{"full", "Acme (ACM) - ERC-20", Descriptor{Name: "Acme", Symbol: "ACM", Standard: "ERC-20"}},
		{"compact_standard", "Acme (ACM) - ERC20", Descriptor{Name: "Acme", Symbol: "ACM", Standard: "ERC-20"}},
		{"no_standard", "Acme (ACM)", Descriptor{Name: "Acme", Symbol: "ACM"}},
		{"no_symbol", "Acme - ERC-1155", Descriptor{Name: "Acme", Standard: "ERC-1155"}},
		{"bare_name", "Acme", Descriptor{Name: "Acme"}},
		{"hyphenated_name", "Multi - Word Fund (MWF) - ERC-1400", Descriptor{Name: "Multi - Word Fund", Symbol: "MWF", Standard: "ERC-1400"}},
		{"unknown_suffix", "Acme (ACM) - SPL", Descriptor{Name: "Acme (ACM) - SPL"}},
		{"padded", "  Acme ( ACM )  -  ERC-721 ", Descriptor{Name: "Acme", Symbol: "ACM", Standard: "ERC-721"}},
		{"empty", "", Descriptor{Name: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.label)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestParse_MalformedNeverRejects(t *testing.T) {
	// Parenthetical without the standard and a dangling dash: everything
	// that fails to match stays part of the name.
	got := Parse("Weird ((nested) - ")
	if got.Name == "" {
		t.Fatal("expected non-empty name for malformed input")
	}
}

func TestNormalize_StandardColumnFallback(t *testing.T) {
	d := Normalize("Acme (ACM)", "ERC20")
	if d.Standard != "ERC-20" {
		t.Errorf("expected fallback standard ERC-20, got %q", d.Standard)
	}

	// The label suffix wins over the column.
	d = Normalize("Acme (ACM) - ERC-721", "ERC20")
	if d.Standard != "ERC-721" {
		t.Errorf("expected label standard ERC-721, got %q", d.Standard)
	}
}

func TestStandardRoundTrip(t *testing.T) {
	for _, stored := range Standards {
		compact := Compact(stored)
		if Stored(compact) != stored {
			t.Errorf("Stored(Compact(%q)) = %q, want %q", stored, Stored(compact), stored)
		}
	}

	if Compact("ERC-20") != "ERC20" {
		t.Errorf("Compact(ERC-20) = %q", Compact("ERC-20"))
	}
	if Stored("ERC20") != "ERC-20" {
		t.Errorf("Stored(ERC20) = %q", Stored("ERC20"))
	}
	// Non-numeric remainders pass through.
	if Stored("ERCX") != "ERCX" {
		t.Errorf("Stored(ERCX) = %q", Stored("ERCX"))
	}
}

func TestLabelRoundTrip(t *testing.T) {
	d := Parse("Acme (ACM) - ERC-20")
	if d.Label() != "Acme (ACM) - ERC-20" {
		t.Errorf("Label() = %q", d.Label())
	}
	if Parse(d.Label()) != d {
		t.Errorf("Parse(Label()) = %+v, want %+v", Parse(d.Label()), d)
	}

	d = Descriptor{Name: "Bare"}
	if d.Label() != "Bare" {
		t.Errorf("Label() = %q", d.Label())
	}
}
