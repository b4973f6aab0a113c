package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_JSON(t *testing.T) {
	system, err := Load(filepath.Join("testdata", "zhuyin_data.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	consonants, vowels, tones := system.Counts()
	if consonants != 2 || vowels != 1 || tones != 2 {
		t.Fatalf("Counts() = %d, %d, %d, want 2, 1, 2", consonants, vowels, tones)
	}

	b := system.Consonants[0]
	if b.Symbol != "ㄅ" || b.Romanization != "b" {
		t.Errorf("first consonant = %q/%q, want ㄅ/b", b.Symbol, b.Romanization)
	}
	if b.ExampleWord.ZhuyinTyping != "ㄅㄚˋ ㄅㄚ˙" {
		t.Errorf("zhuyin_typing not decoded: %q", b.ExampleWord.ZhuyinTyping)
	}
	if len(b.ExampleSentence.Words) != 4 {
		t.Errorf("sentence words = %d, want 4", len(b.ExampleSentence.Words))
	}
	if system.Tones[1].Number != 3 || system.Tones[1].Mark != "ˇ" {
		t.Errorf("second tone = %+v", system.Tones[1])
	}
}

func TestLoad_YAML(t *testing.T) {
	content := `zhuyin_system:
  consonants:
    - zhuyin: ㄇ
      pinyin: m
      example_word: {characters: 媽媽, pinyin: māma}
      example_sentence:
        characters: 媽媽好。
        words:
          - {characters: 媽媽, pinyin: māma}
          - {characters: 好, pinyin: hǎo}
  tones:
    - tone_number: 2
      description: rising
      example: {characters: 麻, pinyin: má}
`
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	system, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(system.Consonants) != 1 || system.Consonants[0].ExampleSentence.Words[1].Characters != "好" {
		t.Errorf("unexpected consonants: %+v", system.Consonants)
	}
	if len(system.Tones) != 1 || system.Tones[0].Example.Romanization != "má" {
		t.Errorf("unexpected tones: %+v", system.Tones)
	}
}

func TestParseJSON_Unwrapped(t *testing.T) {
	system, err := ParseJSON([]byte(`{"vowels":[{"zhuyin":"ㄧ","pinyin":"i"}]}`))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if len(system.Vowels) != 1 || system.Vowels[0].Symbol != "ㄧ" {
		t.Errorf("unexpected vowels: %+v", system.Vowels)
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", `{"zhuyin_system": [`},
		{"empty", `{}`},
		{"empty symbol", `{"consonants":[{"zhuyin":" ","pinyin":"b"}]}`},
		{"duplicate consonant", `{"consonants":[{"zhuyin":"ㄅ"},{"zhuyin":"ㄅ"}]}`},
		{"duplicate vowel", `{"vowels":[{"zhuyin":"ㄚ"},{"zhuyin":"ㄚ"}]}`},
		{"tone without number", `{"tones":[{"description":"flat"}]}`},
		{"symbol without file name characters", `{"consonants":[{"zhuyin":"。","pinyin":"b"}]}`},
		{"sentence prefix without file name characters", `{"consonants":[{"zhuyin":"ㄅ","example_sentence":{"characters":"。，！？；：。，！？爸爸"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.content))
			if !errors.Is(err, ErrInvalidInventory) {
				t.Errorf("ParseJSON() error = %v, want ErrInvalidInventory", err)
			}
		})
	}
}

func TestParseJSON_SymbolSharedAcrossSequences(t *testing.T) {
	content := `{"consonants":[{"zhuyin":"ㄚ"}],"vowels":[{"zhuyin":"ㄚ"}],"tones":[{"tone_number":1,"example":{"characters":"ㄚ"}}]}`
	if _, err := ParseJSON([]byte(content)); err != nil {
		t.Errorf("ParseJSON() error = %v, want nil", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/zhuyin_data.json")
	if !errors.Is(err, ErrInvalidInventory) {
		t.Errorf("Load() error = %v, want ErrInvalidInventory", err)
	}
}
