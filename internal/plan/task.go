package plan

// Category identifies the kind of artifact a task produces.
type Category string

const (
	ZhuyinSound       Category = "zhuyin-sound"
	ConsonantWord     Category = "consonant-word"
	ConsonantSentence Category = "consonant-sentence"
	VowelWord         Category = "vowel-word"
	VowelSentence     Category = "vowel-sentence"
	ToneExample       Category = "tone-example"
	IndividualWord    Category = "individual-word"
)

// Categories lists every category in planning order.
var Categories = []Category{
	ZhuyinSound,
	ConsonantWord,
	ConsonantSentence,
	VowelWord,
	VowelSentence,
	ToneExample,
	IndividualWord,
}

// Dir returns the output directory of a category, relative to the root.
func (c Category) Dir() string {
	switch c {
	case ZhuyinSound:
		return "zhuyin_sounds"
	case ConsonantWord:
		return "consonants/words"
	case ConsonantSentence:
		return "consonants/sentences"
	case VowelWord:
		return "vowels/words"
	case VowelSentence:
		return "vowels/sentences"
	case ToneExample:
		return "tones/examples"
	case IndividualWord:
		return "individual_words"
	}
	return ""
}

// Dirs returns the output directories of all categories.
func Dirs() []string {
	dirs := make([]string, len(Categories))
	for i, c := range Categories {
		dirs[i] = c.Dir()
	}
	return dirs
}

// Task is one planned artifact: the text to synthesize and where the audio
// goes. TargetPath is relative to the output root and uses forward slashes.
type Task struct {
	Text       string
	TargetPath string
	Category   Category

	// Symbol is the Zhuyin unit the task was planned for, empty for
	// individual words and tones.
	Symbol string
}
