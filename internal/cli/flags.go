package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile           string
	InputFile         string
	OutputDir         string
	AudioFormat       string
	Provider          string
	FallbackProvider  string
	Language          string
	Delay             float64 // seconds between synthesize calls
	RequestsPerMinute int     // token bucket instead of a fixed delay when > 0
	Policy            string
	Debug             bool

	// Modes
	Clean         bool
	Yes           bool
	Archive       bool
	FixVowels     bool
	FixConsonants bool
	DryRun        bool
	Stats         bool
	ListVoices    bool
	ListPolicies  bool

	// Circuit breaker
	BreakerFailures int
	BreakerCooldown time.Duration

	// gTTS flags
	GTTSSlow bool

	// Google Cloud TTS flags
	GoogleVoice        string
	GoogleSpeakingRate float64

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// Gemini flags
	GeminiModel string
	GeminiVoice string

	// espeak-ng flags
	ESpeakVoice string
	ESpeakSpeed int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputFile:          "zhuyin_data.json",
		OutputDir:          "zhuyin_audios",
		AudioFormat:        "mp3",
		Provider:           "gtts",
		Language:           "zh",
		Delay:              1.0,
		BreakerCooldown:    30 * time.Second,
		GoogleSpeakingRate: 1.0,
		OpenAIModel:        "gpt-4o-mini-tts",
		OpenAIVoice:        "alloy",
		OpenAISpeed:        1.0,
		GeminiModel:        "gemini-2.5-flash-preview-tts",
		GeminiVoice:        "Kore",
		ESpeakVoice:        "cmn",
		ESpeakSpeed:        130,
	}
}

// Mode returns the name of the selected operator command.
func (f *Flags) Mode() string {
	switch {
	case f.ListPolicies:
		return "list-policies"
	case f.ListVoices:
		return "list-voices"
	case f.Stats:
		return "stats"
	case f.Clean:
		return "clean"
	case f.DryRun:
		return "dry-run"
	case f.FixVowels:
		return "fix-vowels"
	case f.FixConsonants:
		return "fix-consonants"
	default:
		return "generate"
	}
}
