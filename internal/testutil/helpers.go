package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"codeberg.org/snonux/zhuyinaudio/internal/inventory"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	if ok, _ := afero.Exists(fs, path); ok {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, fs afero.Fs, path string, expected []byte) {
	t.Helper()

	actual, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// ListFiles returns every regular file below root, relative to root with
// forward slashes. Temporary ".tmp" files are included so tests can assert
// none were left behind.
func ListFiles(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()

	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	return files
}

// SampleSystem returns a small inventory: consonants ㄅ and ㄖ, vowel ㄚ and
// two tones. Both consonant sentences contain the word 你好.
func SampleSystem() *inventory.PhoneticSystem {
	return &inventory.PhoneticSystem{
		Consonants: []inventory.Unit{
			{
				Symbol:       "ㄅ",
				Romanization: "b",
				ExampleWord:  inventory.Word{Characters: "爸爸", Romanization: "bà ba"},
				ExampleSentence: inventory.Sentence{
					Characters: "爸爸說你好。",
					Words: []inventory.Word{
						{Characters: "爸爸", Romanization: "bà ba"},
						{Characters: "你好", Romanization: "nǐ hǎo"},
					},
				},
			},
			{
				Symbol:       "ㄖ",
				Romanization: "r",
				ExampleWord:  inventory.Word{Characters: "日", Romanization: "rì"},
				ExampleSentence: inventory.Sentence{
					Characters: "你好，日本人。",
					Words: []inventory.Word{
						{Characters: "你好", Romanization: "nǐ hǎo"},
					},
				},
			},
		},
		Vowels: []inventory.Unit{
			{
				Symbol:       "ㄚ",
				Romanization: "a",
				ExampleWord:  inventory.Word{Characters: "阿", Romanization: "ā"},
			},
		},
		Tones: []inventory.Tone{
			{Number: 1, Mark: "ˉ", Description: "high level", Example: inventory.Word{Characters: "媽", Romanization: "mā"}},
			{Number: 3, Mark: "ˇ", Description: "dipping", Example: inventory.Word{Characters: "馬", Romanization: "mǎ"}},
		},
	}
}

// SampleJSON is SampleSystem in the on-disk JSON layout.
const SampleJSON = `{
  "zhuyin_system": {
    "consonants": [
      {
        "zhuyin": "ㄅ",
        "pinyin": "b",
        "example_word": {"characters": "爸爸", "pinyin": "bà ba"},
        "example_sentence": {
          "characters": "爸爸說你好。",
          "words": [
            {"characters": "爸爸", "pinyin": "bà ba"},
            {"characters": "你好", "pinyin": "nǐ hǎo"}
          ]
        }
      },
      {
        "zhuyin": "ㄖ",
        "pinyin": "r",
        "example_word": {"characters": "日", "pinyin": "rì"},
        "example_sentence": {
          "characters": "你好，日本人。",
          "words": [{"characters": "你好", "pinyin": "nǐ hǎo"}]
        }
      }
    ],
    "vowels": [
      {"zhuyin": "ㄚ", "pinyin": "a", "example_word": {"characters": "阿", "pinyin": "ā"}}
    ],
    "tones": [
      {"tone_number": 1, "mark": "ˉ", "description": "high level", "example": {"characters": "媽", "pinyin": "mā"}},
      {"tone_number": 3, "mark": "ˇ", "description": "dipping", "example": {"characters": "馬", "pinyin": "mǎ"}}
    ]
  }
}`

// WriteSampleJSON writes SampleJSON into dir and returns its path.
func WriteSampleJSON(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "zhuyin_data.json")
	CreateTestFile(t, path, []byte(SampleJSON))
	return path
}
