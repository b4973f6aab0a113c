package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"codeberg.org/snonux/zhuyinaudio/internal/archive"
	"codeberg.org/snonux/zhuyinaudio/internal/artifact"
	"codeberg.org/snonux/zhuyinaudio/internal/audio"
	"codeberg.org/snonux/zhuyinaudio/internal/cli"
	"codeberg.org/snonux/zhuyinaudio/internal/generator"
	"codeberg.org/snonux/zhuyinaudio/internal/inventory"
	"codeberg.org/snonux/zhuyinaudio/internal/models"
	"codeberg.org/snonux/zhuyinaudio/internal/plan"
	"codeberg.org/snonux/zhuyinaudio/internal/pronounce"
	"codeberg.org/snonux/zhuyinaudio/internal/report"
	"codeberg.org/snonux/zhuyinaudio/internal/stats"
	"codeberg.org/snonux/zhuyinaudio/internal/throttle"
)

var (
	// ErrFatalInput means the run cannot start because of its input: a
	// missing or malformed inventory, an unknown policy or provider.
	ErrFatalInput = errors.New("invalid input")

	// ErrConnectivity means the synthesis service is not reachable. Nothing
	// has been written when it is returned.
	ErrConnectivity = errors.New("synthesis service not reachable")
)

// Processor handles the main generation logic
type Processor struct {
	flags   *cli.Flags
	printer *report.Printer
	fs      afero.Fs
	in      io.Reader
	now     func() time.Time

	newProvider func(ctx context.Context, config *audio.Config) (audio.Provider, error)
	newThrottle func() throttle.Throttle
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	p := &Processor{
		flags:       flags,
		printer:     report.NewPrinter(os.Stdout),
		fs:          afero.NewOsFs(),
		in:          os.Stdin,
		now:         time.Now,
		newProvider: audio.NewProvider,
	}
	p.newThrottle = p.defaultThrottle
	return p
}

// Run executes the mode selected by the flags.
func (p *Processor) Run(ctx context.Context) error {
	switch p.flags.Mode() {
	case "list-policies":
		return p.ListPolicies()
	case "list-voices":
		return p.ListVoices(ctx)
	case "stats":
		return p.ShowStats()
	case "clean":
		return p.Clean()
	case "dry-run":
		return p.DryRun()
	case "fix-vowels":
		return p.FixVowels(ctx)
	case "fix-consonants":
		return p.FixConsonants(ctx)
	default:
		return p.GenerateAll(ctx)
	}
}

// GenerateAll generates every missing artifact of the inventory.
func (p *Processor) GenerateAll(ctx context.Context) error {
	return p.generate(ctx, "Generating audio files", func(planner *plan.Planner, system *inventory.PhoneticSystem) []plan.Task {
		return planner.Plan(system)
	}, false)
}

// FixVowels deletes and regenerates the vowel sound files.
func (p *Processor) FixVowels(ctx context.Context) error {
	return p.generate(ctx, "Regenerating vowel sounds", func(planner *plan.Planner, system *inventory.PhoneticSystem) []plan.Task {
		return planner.PlanSounds(system, pronounce.Vowel)
	}, true)
}

// FixConsonants deletes and regenerates the consonant sound files using the
// selected vowel policy.
func (p *Processor) FixConsonants(ctx context.Context) error {
	return p.generate(ctx, "Regenerating consonant sounds", func(planner *plan.Planner, system *inventory.PhoneticSystem) []plan.Task {
		return planner.PlanSounds(system, pronounce.Consonant)
	}, true)
}

type planFunc func(*plan.Planner, *inventory.PhoneticSystem) []plan.Task

func (p *Processor) generate(ctx context.Context, title string, planTasks planFunc, replace bool) error {
	system, err := p.loadInventory()
	if err != nil {
		return err
	}
	policy, err := p.policy()
	if err != nil {
		return err
	}

	provider, err := p.newProvider(ctx, p.providerConfig())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFatalInput, err)
	}

	// Reachability comes before any change to the output tree
	if err := provider.IsAvailable(ctx); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return fmt.Errorf("reachability check of %s interrupted: %w", provider.Name(), err)
		}
		return fmt.Errorf("%w: %s: %v", ErrConnectivity, provider.Name(), err)
	}

	store := p.store()
	if err := store.EnsureLayout(plan.Dirs()); err != nil {
		return err
	}

	planner := plan.NewPlanner(pronounce.NewResolver(policy), p.format())
	tasks := planTasks(planner, system)

	if replace {
		removed := 0
		for _, task := range tasks {
			ok, err := store.Remove(task.TargetPath)
			if err != nil {
				return err
			}
			if ok {
				removed++
			}
		}
		logrus.WithField("count", removed).Info("removed existing files")
	}

	executor := generator.NewExecutor(provider, p.newThrottle(), store, p.language())
	executor.OnResult = p.printer.Result

	logrus.WithFields(logrus.Fields{
		"provider": provider.Name(),
		"policy":   policy.Name,
		"tasks":    len(tasks),
	}).Debug("starting batch")

	p.printer.Start(title, len(tasks))
	results, execErr := executor.Execute(ctx, tasks)

	interrupted := errors.Is(execErr, context.Canceled) || errors.Is(execErr, context.DeadlineExceeded)
	p.printer.Summary(results.Counts(), interrupted)
	p.printer.Failures(results.Failures())

	if execErr != nil {
		return execErr
	}

	return p.ShowStats()
}

// DryRun prints the pronunciation decisions and the planned tasks. It makes
// no network calls and writes nothing.
func (p *Processor) DryRun() error {
	system, err := p.loadInventory()
	if err != nil {
		return err
	}
	policy, err := p.policy()
	if err != nil {
		return err
	}

	resolver := pronounce.NewResolver(policy)
	p.printer.Decisions(policy, resolver.Decisions(system))

	store := p.store()
	tasks := plan.NewPlanner(resolver, p.format()).Plan(system)
	p.printer.Tasks(tasks, func(t plan.Task) bool {
		ok, err := store.Exists(t.TargetPath)
		return err == nil && ok
	})
	return nil
}

// Clean deletes the output tree after confirmation, optionally archiving it
// first.
func (p *Processor) Clean() error {
	store := p.store()
	if !store.RootExists() {
		p.printer.Infof("Nothing to clean, %s does not exist", store.Root())
		return nil
	}

	if !p.flags.Yes && !p.confirm(fmt.Sprintf("Delete all files in %s? [y/N] ", store.Root())) {
		p.printer.Warnf("Aborted")
		return nil
	}

	if p.flags.Archive {
		path, err := archive.Create(p.fs, store.Root(), p.now())
		if err != nil {
			return fmt.Errorf("failed to archive output directory: %w", err)
		}
		names, err := archive.List(p.fs, path)
		if err != nil {
			return fmt.Errorf("failed to verify archive %s: %w", path, err)
		}
		p.printer.Infof("Output directory archived to: %s (%d files)", path, len(names))
	}

	if err := store.Purge(); err != nil {
		return err
	}
	p.printer.Infof("Deleted %s", store.Root())
	return nil
}

// ShowStats prints per-directory file counts and sizes.
func (p *Processor) ShowStats() error {
	r, err := stats.Scan(p.fs, p.outputDir(), p.format())
	if err != nil {
		return err
	}
	p.printer.Stats(r)
	return nil
}

// ListPolicies prints the registered vowel policies.
func (p *Processor) ListPolicies() error {
	current := p.str("pronounce.policy", p.flags.Policy)
	if current == "" {
		current = pronounce.DefaultPolicyName
	}
	p.printer.Policies(pronounce.Names(), current)
	return nil
}

// ListVoices prints the voices of the selected provider.
func (p *Processor) ListVoices(ctx context.Context) error {
	config := p.providerConfig()
	voices, err := models.NewLister(config).Voices(ctx, config.Provider, p.language())
	if err != nil {
		return err
	}
	p.printer.Voices(config.Provider, voices)
	return nil
}

func (p *Processor) loadInventory() (*inventory.PhoneticSystem, error) {
	path := p.str("input.file", p.flags.InputFile)
	system, err := inventory.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFatalInput, err)
	}
	return system, nil
}

func (p *Processor) policy() (pronounce.VowelPolicy, error) {
	policy, err := pronounce.Lookup(p.str("pronounce.policy", p.flags.Policy))
	if err != nil {
		return pronounce.VowelPolicy{}, fmt.Errorf("%w: %v", ErrFatalInput, err)
	}
	return policy, nil
}

func (p *Processor) confirm(prompt string) bool {
	p.printer.Warnf("%s", strings.TrimRight(prompt, " "))
	answer, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (p *Processor) store() *artifact.Store {
	return artifact.NewStore(p.fs, p.outputDir())
}

func (p *Processor) outputDir() string {
	return p.str("output.directory", p.flags.OutputDir)
}

func (p *Processor) format() string {
	return strings.ToLower(strings.TrimPrefix(p.str("audio.format", p.flags.AudioFormat), "."))
}

func (p *Processor) language() string {
	return p.str("audio.language", p.flags.Language)
}

func (p *Processor) defaultThrottle() throttle.Throttle {
	if rpm := p.integer("audio.requests_per_minute", p.flags.RequestsPerMinute); rpm > 0 {
		return throttle.NewTokenBucket(rpm)
	}
	delay := p.float("audio.delay", p.flags.Delay)
	return throttle.NewFixed(time.Duration(delay * float64(time.Second)))
}

func (p *Processor) providerConfig() *audio.Config {
	config := audio.DefaultProviderConfig()

	config.Provider = p.str("audio.provider", p.flags.Provider)
	config.FallbackProvider = p.str("audio.fallback_provider", p.flags.FallbackProvider)
	config.OutputFormat = p.format()

	if failures := p.integer("audio.breaker_failures", p.flags.BreakerFailures); failures > 0 {
		config.BreakerFailures = uint32(failures)
	}
	config.BreakerCooldown = p.duration("audio.breaker_cooldown", p.flags.BreakerCooldown)

	config.GTTSSlow = p.boolean("audio.gtts_slow", p.flags.GTTSSlow)

	config.GoogleVoice = p.str("audio.google_voice", p.flags.GoogleVoice)
	config.GoogleSpeakingRate = p.float("audio.google_speaking_rate", p.flags.GoogleSpeakingRate)

	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = p.str("audio.openai_model", p.flags.OpenAIModel)
	config.OpenAIVoice = p.str("audio.openai_voice", p.flags.OpenAIVoice)
	config.OpenAISpeed = p.float("audio.openai_speed", p.flags.OpenAISpeed)
	if instruction := p.str("audio.openai_instruction", p.flags.OpenAIInstruction); instruction != "" {
		config.OpenAIInstruction = instruction
	}

	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = p.str("audio.gemini_model", p.flags.GeminiModel)
	config.GeminiVoice = p.str("audio.gemini_voice", p.flags.GeminiVoice)

	config.ESpeakVoice = p.str("audio.espeak_voice", p.flags.ESpeakVoice)
	config.ESpeakSpeed = p.integer("audio.espeak_speed", p.flags.ESpeakSpeed)

	return config
}

// Viper holds explicitly set flags, env and config file values; anything
// else falls back to the flag default.

func (p *Processor) str(key, fallback string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return fallback
}

func (p *Processor) integer(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func (p *Processor) float(key string, fallback float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

func (p *Processor) boolean(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}

func (p *Processor) duration(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return fallback
}
