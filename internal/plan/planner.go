package plan

import (
	"fmt"
	"path"
	"strings"

	"codeberg.org/snonux/zhuyinaudio/internal"
	"codeberg.org/snonux/zhuyinaudio/internal/inventory"
	"codeberg.org/snonux/zhuyinaudio/internal/pronounce"
)

// SentencePrefixLength bounds how much of a sentence ends up in its file
// name.
const SentencePrefixLength = internal.SentencePrefixLength

// Planner turns a phonetic inventory into an ordered, deduplicated task list.
type Planner struct {
	resolver  *pronounce.Resolver
	extension string
}

// NewPlanner creates a planner. An empty extension defaults to mp3.
func NewPlanner(resolver *pronounce.Resolver, extension string) *Planner {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		extension = "mp3"
	}
	return &Planner{resolver: resolver, extension: extension}
}

// Extension returns the artifact file extension without the dot.
func (p *Planner) Extension() string {
	return p.extension
}

// Plan enumerates every task for the inventory: zhuyin sounds, then each
// consonant's word, sentence and sentence words, the same for vowels, and
// finally the tone examples. Tasks with equal target paths are collapsed
// into the first one.
func (p *Planner) Plan(system *inventory.PhoneticSystem) []Task {
	b := newBuilder()

	for _, t := range p.PlanZhuyinSounds(system) {
		b.add(t)
	}
	p.planUnits(b, system.Consonants, "consonants", ConsonantWord, ConsonantSentence)
	p.planUnits(b, system.Vowels, "vowels", VowelWord, VowelSentence)
	for _, tone := range system.Tones {
		b.add(Task{
			Text:       tone.Example.Characters,
			TargetPath: p.file(ToneExample, fmt.Sprintf("tono_%d", tone.Number), internal.SanitizeFilename(tone.Example.Characters), romanization(tone.Example.Romanization)),
			Category:   ToneExample,
		})
	}

	return b.tasks
}

// PlanZhuyinSounds plans only the single-symbol sounds, consonants first.
func (p *Planner) PlanZhuyinSounds(system *inventory.PhoneticSystem) []Task {
	b := newBuilder()
	for _, c := range system.Consonants {
		b.add(p.soundTask(pronounce.ConsonantUnit(c)))
	}
	for _, v := range system.Vowels {
		b.add(p.soundTask(pronounce.VowelUnit(v)))
	}
	return b.tasks
}

// PlanSounds plans the single-symbol sounds of one kind.
func (p *Planner) PlanSounds(system *inventory.PhoneticSystem, kind pronounce.Kind) []Task {
	b := newBuilder()
	if kind == pronounce.Vowel {
		for _, v := range system.Vowels {
			b.add(p.soundTask(pronounce.VowelUnit(v)))
		}
	} else {
		for _, c := range system.Consonants {
			b.add(p.soundTask(pronounce.ConsonantUnit(c)))
		}
	}
	return b.tasks
}

func (p *Planner) soundTask(u pronounce.Unit) Task {
	return Task{
		Text:       p.resolver.Resolve(u),
		TargetPath: p.file(ZhuyinSound, internal.SanitizeFilename(u.Symbol), romanization(firstToken(u.Romanization))),
		Category:   ZhuyinSound,
		Symbol:     u.Symbol,
	}
}

func (p *Planner) planUnits(b *builder, units []inventory.Unit, kind string, word, sentence Category) {
	for _, u := range units {
		symbol := internal.SanitizeFilename(u.Symbol)

		w := u.ExampleWord
		if w.Characters != "" {
			b.add(Task{
				Text:       w.Characters,
				TargetPath: p.file(word, symbol, internal.SanitizeFilename(w.Characters), romanization(w.Romanization)),
				Category:   word,
				Symbol:     u.Symbol,
			})
		}

		s := u.ExampleSentence
		if s.Characters != "" {
			prefix := internal.Truncate(s.Characters, SentencePrefixLength)
			b.add(Task{
				Text:       s.Characters,
				TargetPath: p.file(sentence, symbol, internal.SanitizeFilename(prefix)),
				Category:   sentence,
				Symbol:     u.Symbol,
			})
		}

		for _, nested := range s.Words {
			if nested.Characters == "" {
				continue
			}
			b.add(p.individualWordTask(nested))
		}
	}
}

func (p *Planner) individualWordTask(w inventory.Word) Task {
	return Task{
		Text:       w.Characters,
		TargetPath: p.file(IndividualWord, internal.SanitizeFilename(w.Characters), romanization(w.Romanization)),
		Category:   IndividualWord,
	}
}

// file joins name parts with underscores under the category directory.
func (p *Planner) file(c Category, parts ...string) string {
	return path.Join(c.Dir(), strings.Join(parts, "_")+"."+p.extension)
}

// Only keeps the tasks belonging to the given categories, preserving order.
func Only(tasks []Task, categories ...Category) []Task {
	keep := make(map[Category]bool, len(categories))
	for _, c := range categories {
		keep[c] = true
	}
	var filtered []Task
	for _, t := range tasks {
		if keep[t.Category] {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

type builder struct {
	tasks []Task
	seen  map[string]bool
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]bool)}
}

func (b *builder) add(t Task) {
	if b.seen[t.TargetPath] {
		return
	}
	b.seen[t.TargetPath] = true
	b.tasks = append(b.tasks, t)
}

// romanization keeps spaces and tone marks; the web player builds the same
// names from the raw pinyin.
func romanization(s string) string {
	return internal.StripIllegal(strings.TrimSpace(s))
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
