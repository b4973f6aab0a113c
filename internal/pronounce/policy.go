package pronounce

import (
	"fmt"
	"sort"
)

// Vowel glyphs used by the built-in policies.
const (
	VowelA = "ㄚ"
	VowelI = "ㄧ"
	VowelU = "ㄨ"
)

// VowelPolicy maps a consonant symbol to the vowel that forms a valid
// syllable with it. Consonants missing from Overrides take Default.
type VowelPolicy struct {
	Name        string
	Description string
	Default     string
	Overrides   map[string]string

	// Latin policies build the text from the romanization instead of the
	// glyph, e.g. "b" + "a".
	Latin bool
}

// VowelFor returns the vowel selected for a consonant symbol and whether an
// override applied.
func (p VowelPolicy) VowelFor(symbol string) (string, bool) {
	if v, ok := p.Overrides[symbol]; ok {
		return v, true
	}
	return p.Default, false
}

// DefaultPolicyName is the canonical policy.
const DefaultPolicyName = "v3-glyph"

var policies = map[string]VowelPolicy{
	"v1-latin": {
		Name:        "v1-latin",
		Description: "romanization followed by 'a' (first generator)",
		Default:     "a",
		Latin:       true,
	},
	"v2-glyph": {
		Name:        "v2-glyph",
		Description: "glyph + ㄚ, palatals ㄐㄑㄒ take ㄧ",
		Default:     VowelA,
		Overrides: map[string]string{
			"ㄐ": VowelI,
			"ㄑ": VowelI,
			"ㄒ": VowelI,
		},
	},
	"v3-glyph": {
		Name:        "v3-glyph",
		Description: "glyph + ㄚ, palatals ㄐㄑㄒ take ㄧ, ㄖ takes ㄨ",
		Default:     VowelA,
		Overrides: map[string]string{
			"ㄐ": VowelI,
			"ㄑ": VowelI,
			"ㄒ": VowelI,
			"ㄖ": VowelU,
		},
	},
}

// Lookup returns a registered policy by name. An empty name selects the
// canonical policy.
func Lookup(name string) (VowelPolicy, error) {
	if name == "" {
		name = DefaultPolicyName
	}
	p, ok := policies[name]
	if !ok {
		return VowelPolicy{}, fmt.Errorf("unknown vowel policy %q (available: %v)", name, Names())
	}
	return p, nil
}

// Register adds or replaces a named policy.
func Register(p VowelPolicy) error {
	if p.Name == "" {
		return fmt.Errorf("vowel policy needs a name")
	}
	if p.Default == "" {
		return fmt.Errorf("vowel policy %q needs a default vowel", p.Name)
	}
	policies[p.Name] = p
	return nil
}

// Names lists registered policies in sorted order.
func Names() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
