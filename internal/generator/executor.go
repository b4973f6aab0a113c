package generator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/zhuyinaudio/internal/audio"
	"codeberg.org/snonux/zhuyinaudio/internal/plan"
	"codeberg.org/snonux/zhuyinaudio/internal/throttle"
)

// Store is where artifacts live. *artifact.Store satisfies it.
type Store interface {
	Exists(rel string) (bool, error)
	Write(rel string, data []byte) error
}

// Executor runs tasks one at a time in plan order.
type Executor struct {
	synth    audio.Synthesizer
	throttle throttle.Throttle
	store    Store
	language string
	log      logrus.FieldLogger

	// OnResult, when set, receives every result as soon as it is known.
	OnResult func(Result)
}

// NewExecutor creates an executor. A nil throttle means no spacing between
// synthesize calls.
func NewExecutor(synth audio.Synthesizer, t throttle.Throttle, store Store, language string) *Executor {
	if t == nil {
		t = throttle.None{}
	}
	if language == "" {
		language = "zh"
	}
	return &Executor{
		synth:    synth,
		throttle: t,
		store:    store,
		language: language,
		log:      logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger used for per-task diagnostics.
func (e *Executor) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		e.log = log
	}
}

// Language returns the language passed to the synthesizer.
func (e *Executor) Language() string {
	return e.language
}

// Execute processes tasks in order. Existing artifacts are skipped without
// calling the synthesizer or the throttle. Per-task failures are recorded and
// the batch continues. When ctx is cancelled the remaining tasks are left
// unprocessed and the results so far are returned with ctx's error.
func (e *Executor) Execute(ctx context.Context, tasks []plan.Task) (Results, error) {
	results := Results{Planned: len(tasks)}
	synthesized := false

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		log := e.log.WithFields(logrus.Fields{
			"task":     fmt.Sprintf("%d/%d", i+1, len(tasks)),
			"path":     task.TargetPath,
			"category": task.Category,
		})

		exists, err := e.store.Exists(task.TargetPath)
		if err != nil {
			e.record(&results, log, Result{Task: task, Outcome: Failed, Err: fmt.Errorf("failed to check artifact: %w", err)})
			continue
		}
		if exists {
			e.record(&results, log, Result{Task: task, Outcome: Cached})
			continue
		}

		if synthesized {
			if err := e.throttle.Wait(ctx); err != nil {
				return results, err
			}
		}
		synthesized = true

		data, err := e.synth.Synthesize(ctx, task.Text, e.language)
		if err != nil {
			if ctx.Err() != nil {
				// interrupted mid-call, the task counts as cancelled
				return results, ctx.Err()
			}
			e.record(&results, log, Result{Task: task, Outcome: Failed, Err: err})
			continue
		}

		if err := e.store.Write(task.TargetPath, data); err != nil {
			e.record(&results, log, Result{Task: task, Outcome: Failed, Err: fmt.Errorf("failed to write artifact: %w", err)})
			continue
		}

		e.record(&results, log, Result{Task: task, Outcome: Generated, Bytes: len(data)})
	}

	return results, nil
}

func (e *Executor) record(results *Results, log logrus.FieldLogger, r Result) {
	results.Items = append(results.Items, r)

	entry := log.WithField("outcome", r.Outcome.String())
	if r.Err != nil {
		entry = entry.WithError(r.Err)
	}
	entry.Debug("task done")

	if e.OnResult != nil {
		e.OnResult(r)
	}
}
