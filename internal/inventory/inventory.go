package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/zhuyinaudio/internal"
)

// ErrInvalidInventory is returned for missing, unreadable or malformed
// inventory files.
var ErrInvalidInventory = errors.New("invalid phonetic inventory")

// Word is a characters/romanization pair. Two words are the same word when
// both fields are equal.
type Word struct {
	Characters   string `json:"characters" yaml:"characters"`
	Romanization string `json:"pinyin" yaml:"pinyin"`
	ZhuyinTyping string `json:"zhuyin_typing,omitempty" yaml:"zhuyin_typing,omitempty"`
}

// Sentence is an example sentence and the words it is made of.
type Sentence struct {
	Characters   string `json:"characters" yaml:"characters"`
	Romanization string `json:"pinyin,omitempty" yaml:"pinyin,omitempty"`
	Translation  string `json:"translation,omitempty" yaml:"translation,omitempty"`
	Words        []Word `json:"words" yaml:"words"`
}

// Unit is a consonant or vowel entry of the inventory.
type Unit struct {
	Symbol          string   `json:"zhuyin" yaml:"zhuyin"`
	Romanization    string   `json:"pinyin" yaml:"pinyin"`
	ExampleWord     Word     `json:"example_word" yaml:"example_word"`
	ExampleSentence Sentence `json:"example_sentence" yaml:"example_sentence"`
	Notes           string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Tone is one of the tone examples.
type Tone struct {
	Number      int    `json:"tone_number" yaml:"tone_number"`
	Mark        string `json:"mark,omitempty" yaml:"mark,omitempty"`
	Description string `json:"description" yaml:"description"`
	Example     Word   `json:"example" yaml:"example"`
}

// PhoneticSystem is the full Zhuyin inventory loaded for a run.
type PhoneticSystem struct {
	Consonants []Unit `json:"consonants" yaml:"consonants"`
	Vowels     []Unit `json:"vowels" yaml:"vowels"`
	Tones      []Tone `json:"tones" yaml:"tones"`
}

// document is the on-disk shape; the inventory may be wrapped in a
// "zhuyin_system" key or be the bare object.
type document struct {
	System *PhoneticSystem `json:"zhuyin_system" yaml:"zhuyin_system"`
	PhoneticSystem `yaml:",inline"`
}

// Load reads a JSON or YAML inventory file and validates it.
func Load(path string) (*PhoneticSystem, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidInventory, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(content)
	default:
		return ParseJSON(content)
	}
}

// ParseJSON decodes and validates a JSON inventory.
func ParseJSON(content []byte) (*PhoneticSystem, error) {
	var doc document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInventory, err)
	}
	return finish(doc.System, &doc.PhoneticSystem)
}

// ParseYAML decodes and validates a YAML inventory.
func ParseYAML(content []byte) (*PhoneticSystem, error) {
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInventory, err)
	}
	return finish(doc.System, &doc.PhoneticSystem)
}

func finish(wrapped, bare *PhoneticSystem) (*PhoneticSystem, error) {
	system := bare
	if wrapped != nil {
		system = wrapped
	}
	if err := system.Validate(); err != nil {
		return nil, err
	}
	return system, nil
}

// Validate checks that every symbol is non-empty and unique within its
// sequence. A symbol may repeat across consonants, vowels and tones.
// Symbols and sentence prefixes must keep at least one character after
// filename sanitizing, otherwise their artifact paths collide.
func (s *PhoneticSystem) Validate() error {
	if len(s.Consonants) == 0 && len(s.Vowels) == 0 && len(s.Tones) == 0 {
		return fmt.Errorf("%w: no consonants, vowels or tones", ErrInvalidInventory)
	}
	if err := validateUnits("consonant", s.Consonants); err != nil {
		return err
	}
	if err := validateUnits("vowel", s.Vowels); err != nil {
		return err
	}
	for i, tone := range s.Tones {
		if tone.Number <= 0 {
			return fmt.Errorf("%w: tone %d has no tone_number", ErrInvalidInventory, i+1)
		}
	}
	return nil
}

func validateUnits(kind string, units []Unit) error {
	seen := make(map[string]int, len(units))
	for i, u := range units {
		symbol := strings.TrimSpace(u.Symbol)
		if symbol == "" {
			return fmt.Errorf("%w: %s %d has an empty symbol", ErrInvalidInventory, kind, i+1)
		}
		if internal.SanitizeFilename(symbol) == "" {
			return fmt.Errorf("%w: %s %q has no characters usable in a file name", ErrInvalidInventory, kind, symbol)
		}
		if sentence := u.ExampleSentence.Characters; sentence != "" {
			prefix := internal.Truncate(sentence, internal.SentencePrefixLength)
			if internal.SanitizeFilename(prefix) == "" {
				return fmt.Errorf("%w: %s %q: sentence %q starts with %d characters unusable in a file name", ErrInvalidInventory, kind, symbol, sentence, internal.SentencePrefixLength)
			}
		}
		if prev, ok := seen[symbol]; ok {
			return fmt.Errorf("%w: %s %q appears at %d and %d", ErrInvalidInventory, kind, symbol, prev+1, i+1)
		}
		seen[symbol] = i
	}
	return nil
}

// Counts returns the number of consonants, vowels and tones.
func (s *PhoneticSystem) Counts() (consonants, vowels, tones int) {
	return len(s.Consonants), len(s.Vowels), len(s.Tones)
}
