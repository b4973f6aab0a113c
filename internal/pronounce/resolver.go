package pronounce

import (
	"codeberg.org/snonux/zhuyinaudio/internal/inventory"
)

// Kind tells consonants and vowels apart.
type Kind int

const (
	Consonant Kind = iota
	Vowel
)

func (k Kind) String() string {
	if k == Vowel {
		return "vowel"
	}
	return "consonant"
}

// Unit is the part of an inventory entry the resolver needs.
type Unit struct {
	Kind         Kind
	Symbol       string
	Romanization string
}

// Resolver turns phonetic units into the text handed to the synthesizer.
type Resolver struct {
	policy VowelPolicy
}

// NewResolver creates a resolver using the given policy.
func NewResolver(policy VowelPolicy) *Resolver {
	return &Resolver{policy: policy}
}

// Policy returns the policy in use.
func (r *Resolver) Policy() VowelPolicy {
	return r.policy
}

// Resolve returns the synthesizable text for a unit. Vowels are
// pronounceable on their own; consonants get the vowel chosen by the policy.
func (r *Resolver) Resolve(u Unit) string {
	if u.Kind == Vowel {
		return u.Symbol
	}
	vowel, _ := r.policy.VowelFor(u.Symbol)
	if r.policy.Latin {
		return u.Romanization + vowel
	}
	return u.Symbol + vowel
}

// Decision records how one unit was resolved.
type Decision struct {
	Unit       Unit
	Text       string
	Overridden bool
}

// Decisions resolves every consonant and vowel of the inventory without
// synthesizing anything.
func (r *Resolver) Decisions(system *inventory.PhoneticSystem) []Decision {
	decisions := make([]Decision, 0, len(system.Consonants)+len(system.Vowels))
	for _, c := range system.Consonants {
		u := ConsonantUnit(c)
		_, overridden := r.policy.VowelFor(c.Symbol)
		decisions = append(decisions, Decision{Unit: u, Text: r.Resolve(u), Overridden: overridden})
	}
	for _, v := range system.Vowels {
		u := VowelUnit(v)
		decisions = append(decisions, Decision{Unit: u, Text: r.Resolve(u)})
	}
	return decisions
}

// ConsonantUnit adapts an inventory consonant.
func ConsonantUnit(u inventory.Unit) Unit {
	return Unit{Kind: Consonant, Symbol: u.Symbol, Romanization: u.Romanization}
}

// VowelUnit adapts an inventory vowel.
func VowelUnit(u inventory.Unit) Unit {
	return Unit{Kind: Vowel, Symbol: u.Symbol, Romanization: u.Romanization}
}
