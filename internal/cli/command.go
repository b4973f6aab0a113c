package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/zhuyinaudio/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zhuyinaudio",
		Short: "Zhuyin (Bopomofo) pronunciation audio generator",
		Long: `zhuyinaudio generates audio files for every Zhuyin symbol, example word,
example sentence and tone of a phonetic inventory.

Files that already exist are never generated again, so an interrupted run
can simply be restarted.

Examples:
  zhuyinaudio                              # Generate everything missing
  zhuyinaudio --dry-run                    # Show what would be generated
  zhuyinaudio --fix-vowels                 # Regenerate vowel sounds
  zhuyinaudio --fix-consonants --policy v3-glyph
  zhuyinaudio --clean --archive            # Archive, then delete all audio
  zhuyinaudio --provider openai --format wav`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.zhuyinaudio.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	// Local flags
	cmd.Flags().StringVar(&flags.InputFile, "json", flags.InputFile, "Phonetic inventory file (JSON or YAML)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Audio provider: gtts, google, openai, gemini, espeak")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Provider used when the primary one fails")
	cmd.Flags().StringVar(&flags.Language, "lang", flags.Language, "Language passed to the audio provider")
	cmd.Flags().Float64Var(&flags.Delay, "delay", flags.Delay, "Seconds to wait between requests to the audio provider")
	cmd.Flags().IntVar(&flags.RequestsPerMinute, "rpm", 0, "Rate limit in requests per minute (replaces --delay when set)")
	cmd.Flags().StringVar(&flags.Policy, "policy", "", "Vowel policy for consonant sounds (see --list-policies)")

	// Modes
	cmd.Flags().BoolVar(&flags.Clean, "clean", false, "Delete all generated audio files")
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "With --clean, pack the output directory into a tar.zst archive first")
	cmd.Flags().BoolVar(&flags.FixVowels, "fix-vowels", false, "Regenerate the vowel sound files")
	cmd.Flags().BoolVar(&flags.FixConsonants, "fix-consonants", false, "Regenerate the consonant sound files with --policy")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Show pronunciations and planned files without generating anything")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "Show statistics of the generated files")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List voices available for the selected provider")
	cmd.Flags().BoolVar(&flags.ListPolicies, "list-policies", false, "List vowel policies")

	// Circuit breaker
	cmd.Flags().IntVar(&flags.BreakerFailures, "breaker-failures", 0, "Stop calling the provider after this many consecutive failures (0 disables)")
	cmd.Flags().DurationVar(&flags.BreakerCooldown, "breaker-cooldown", flags.BreakerCooldown, "How long the circuit breaker stays open")

	// gTTS flags
	cmd.Flags().BoolVar(&flags.GTTSSlow, "gtts-slow", false, "Ask gTTS for slower speech")

	// Google flags
	cmd.Flags().StringVar(&flags.GoogleVoice, "google-voice", "", "Google Cloud TTS voice, e.g. cmn-TW-Wavenet-A")
	cmd.Flags().Float64Var(&flags.GoogleSpeakingRate, "google-speaking-rate", flags.GoogleSpeakingRate, "Google Cloud TTS speaking rate (0.25 to 4.0)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0, may be ignored by gpt-4o-mini-tts)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Voice instructions for gpt-4o-mini-tts model")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini TTS model")
	cmd.Flags().StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	// espeak-ng flags
	cmd.Flags().StringVar(&flags.ESpeakVoice, "espeak-voice", flags.ESpeakVoice, "espeak-ng voice")
	cmd.Flags().IntVar(&flags.ESpeakSpeed, "espeak-speed", flags.ESpeakSpeed, "espeak-ng speed in words per minute (80 to 450)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.file", cmd.Flags().Lookup("json"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("audio.fallback_provider", cmd.Flags().Lookup("fallback-provider"))
	viper.BindPFlag("audio.language", cmd.Flags().Lookup("lang"))
	viper.BindPFlag("audio.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("audio.requests_per_minute", cmd.Flags().Lookup("rpm"))
	viper.BindPFlag("audio.breaker_failures", cmd.Flags().Lookup("breaker-failures"))
	viper.BindPFlag("audio.breaker_cooldown", cmd.Flags().Lookup("breaker-cooldown"))
	viper.BindPFlag("audio.gtts_slow", cmd.Flags().Lookup("gtts-slow"))
	viper.BindPFlag("audio.google_voice", cmd.Flags().Lookup("google-voice"))
	viper.BindPFlag("audio.google_speaking_rate", cmd.Flags().Lookup("google-speaking-rate"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("audio.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
	viper.BindPFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("audio.gemini_voice", cmd.Flags().Lookup("gemini-voice"))
	viper.BindPFlag("audio.espeak_voice", cmd.Flags().Lookup("espeak-voice"))
	viper.BindPFlag("audio.espeak_speed", cmd.Flags().Lookup("espeak-speed"))
	viper.BindPFlag("pronounce.policy", cmd.Flags().Lookup("policy"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".zhuyinaudio" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".zhuyinaudio")
	}

	// Environment variables
	viper.SetEnvPrefix("ZHUYINAUDIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("audio.gemini_key")
}
