package pronounce

import (
	"strings"
	"testing"

	"codeberg.org/snonux/zhuyinaudio/internal/inventory"
)

var allConsonants = []string{
	"ㄅ", "ㄆ", "ㄇ", "ㄈ", "ㄉ", "ㄊ", "ㄋ", "ㄌ", "ㄍ", "ㄎ", "ㄏ",
	"ㄐ", "ㄑ", "ㄒ", "ㄓ", "ㄔ", "ㄕ", "ㄖ", "ㄗ", "ㄘ", "ㄙ",
}

func TestResolve_Vowel(t *testing.T) {
	r := NewResolver(mustLookup(t, DefaultPolicyName))
	for _, v := range []string{"ㄚ", "ㄛ", "ㄜ", "ㄝ", "ㄞ", "ㄦ", "ㄧ", "ㄨ", "ㄩ"} {
		if got := r.Resolve(Unit{Kind: Vowel, Symbol: v}); got != v {
			t.Errorf("Resolve(vowel %s) = %q, want %q", v, got, v)
		}
	}
}

func TestResolve_ConsonantPolicyProperty(t *testing.T) {
	for _, name := range []string{"v2-glyph", "v3-glyph"} {
		t.Run(name, func(t *testing.T) {
			policy := mustLookup(t, name)
			r := NewResolver(policy)

			for _, c := range allConsonants {
				got := r.Resolve(Unit{Kind: Consonant, Symbol: c})
				want := policy.Default
				if v, ok := policy.Overrides[c]; ok {
					want = v
				}
				if !strings.HasPrefix(got, c) || !strings.HasSuffix(got, want) {
					t.Errorf("Resolve(%s) = %q, want %s + %s", c, got, c, want)
				}
			}
		})
	}
}

func TestResolve_CanonicalTable(t *testing.T) {
	r := NewResolver(mustLookup(t, ""))
	tests := map[string]string{
		"ㄅ": "ㄅㄚ",
		"ㄐ": "ㄐㄧ",
		"ㄑ": "ㄑㄧ",
		"ㄒ": "ㄒㄧ",
		"ㄖ": "ㄖㄨ",
		"ㄙ": "ㄙㄚ",
	}
	for symbol, want := range tests {
		if got := r.Resolve(Unit{Kind: Consonant, Symbol: symbol}); got != want {
			t.Errorf("Resolve(%s) = %q, want %q", symbol, got, want)
		}
	}
}

func TestResolve_LatinPolicy(t *testing.T) {
	r := NewResolver(mustLookup(t, "v1-latin"))
	got := r.Resolve(Unit{Kind: Consonant, Symbol: "ㄅ", Romanization: "b"})
	if got != "ba" {
		t.Errorf("Resolve() = %q, want %q", got, "ba")
	}
}

func TestResolve_Pure(t *testing.T) {
	r := NewResolver(mustLookup(t, ""))
	u := Unit{Kind: Consonant, Symbol: "ㄖ", Romanization: "r"}
	first := r.Resolve(u)
	for i := 0; i < 5; i++ {
		if got := r.Resolve(u); got != first {
			t.Fatalf("Resolve() changed between calls: %q then %q", first, got)
		}
	}
	if u.Symbol != "ㄖ" || u.Romanization != "r" {
		t.Errorf("Resolve() mutated its input: %+v", u)
	}
}

func TestDecisions(t *testing.T) {
	system := &inventory.PhoneticSystem{
		Consonants: []inventory.Unit{{Symbol: "ㄅ", Romanization: "b"}, {Symbol: "ㄖ", Romanization: "r"}},
		Vowels:     []inventory.Unit{{Symbol: "ㄚ", Romanization: "a"}},
	}
	got := NewResolver(mustLookup(t, "")).Decisions(system)
	if len(got) != 3 {
		t.Fatalf("Decisions() returned %d entries, want 3", len(got))
	}

	want := []struct {
		text       string
		overridden bool
		kind       Kind
	}{
		{"ㄅㄚ", false, Consonant},
		{"ㄖㄨ", true, Consonant},
		{"ㄚ", false, Vowel},
	}
	for i, w := range want {
		if got[i].Text != w.text || got[i].Overridden != w.overridden || got[i].Unit.Kind != w.kind {
			t.Errorf("Decisions()[%d] = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Error("Expected error for unknown policy")
	}

	p, err := Lookup("")
	if err != nil || p.Name != DefaultPolicyName {
		t.Errorf("Lookup(\"\") = %v, %v; want %s", p.Name, err, DefaultPolicyName)
	}
}

func TestRegister(t *testing.T) {
	if err := Register(VowelPolicy{Name: "test-all-u", Default: VowelU}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer delete(policies, "test-all-u")

	r := NewResolver(mustLookup(t, "test-all-u"))
	if got := r.Resolve(Unit{Kind: Consonant, Symbol: "ㄅ"}); got != "ㄅㄨ" {
		t.Errorf("Resolve() = %q, want ㄅㄨ", got)
	}

	if err := Register(VowelPolicy{Name: "broken"}); err == nil {
		t.Error("Expected error for policy without default vowel")
	}
}

func mustLookup(t *testing.T, name string) VowelPolicy {
	t.Helper()
	p, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", name, err)
	}
	return p
}
