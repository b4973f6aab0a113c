package generator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"codeberg.org/snonux/zhuyinaudio/internal/artifact"
	"codeberg.org/snonux/zhuyinaudio/internal/plan"
	"codeberg.org/snonux/zhuyinaudio/internal/pronounce"
	"codeberg.org/snonux/zhuyinaudio/internal/testutil"
	"codeberg.org/snonux/zhuyinaudio/internal/throttle"
)

const root = "/out"

func sampleTasks(t *testing.T) []plan.Task {
	t.Helper()
	policy, err := pronounce.Lookup("")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	return plan.NewPlanner(pronounce.NewResolver(policy), "mp3").Plan(testutil.SampleSystem())
}

func newTestExecutor(synth *testutil.StubSynthesizer, th *testutil.RecordingThrottle) (*Executor, *artifact.Store) {
	store := artifact.NewStore(afero.NewMemMapFs(), root)
	return NewExecutor(synth, th, store, "zh"), store
}

func TestExecute_GeneratesEverything(t *testing.T) {
	tasks := sampleTasks(t)
	synth := &testutil.StubSynthesizer{}
	th := &testutil.RecordingThrottle{}
	exec, store := newTestExecutor(synth, th)

	var streamed []Result
	exec.OnResult = func(r Result) { streamed = append(streamed, r) }

	results, err := exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	counts := results.Counts()
	if counts.Generated != len(tasks) || counts.Cached != 0 || counts.Failed != 0 || counts.Cancelled != 0 {
		t.Errorf("Unexpected counts %+v for %d tasks", counts, len(tasks))
	}
	if len(streamed) != len(tasks) {
		t.Errorf("OnResult called %d times, want %d", len(streamed), len(tasks))
	}
	if synth.CallCount() != len(tasks) {
		t.Errorf("Synthesize called %d times, want %d", synth.CallCount(), len(tasks))
	}
	if th.Waits != len(tasks)-1 {
		t.Errorf("Throttle waited %d times, want %d", th.Waits, len(tasks)-1)
	}

	for i, task := range tasks {
		if results.Items[i].Task.TargetPath != task.TargetPath {
			t.Errorf("Result %d out of plan order: %s", i, results.Items[i].Task.TargetPath)
		}
		testutil.AssertFileContent(t, store.Fs(), store.Path(task.TargetPath), []byte("audio:"+task.Text))
	}
}

func TestExecute_SecondRunMakesNoCalls(t *testing.T) {
	tasks := sampleTasks(t)
	synth := &testutil.StubSynthesizer{}
	th := &testutil.RecordingThrottle{}
	exec, _ := newTestExecutor(synth, th)

	if _, err := exec.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	firstCalls, firstWaits := synth.CallCount(), th.Waits

	results, err := exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}

	if synth.CallCount() != firstCalls {
		t.Errorf("second run made %d synthesize calls", synth.CallCount()-firstCalls)
	}
	if th.Waits != firstWaits {
		t.Errorf("second run waited %d times", th.Waits-firstWaits)
	}
	if c := results.Counts(); c.Cached != len(tasks) {
		t.Errorf("Expected all %d tasks cached, got %+v", len(tasks), c)
	}
}

func TestExecute_AlwaysFailingSynthesizer(t *testing.T) {
	task := plan.Task{Text: "ㄖㄨ", TargetPath: "zhuyin_sounds/ㄖ_r.mp3", Category: plan.ZhuyinSound, Symbol: "ㄖ"}
	synth := &testutil.StubSynthesizer{Err: errors.New("service unavailable")}
	exec, store := newTestExecutor(synth, &testutil.RecordingThrottle{})

	results, err := exec.Execute(context.Background(), []plan.Task{task})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if c := results.Counts(); c.Failed != 1 || c.Generated != 0 {
		t.Errorf("Unexpected counts %+v", c)
	}
	if results.Items[0].Reason() != "service unavailable" {
		t.Errorf("Unexpected reason %q", results.Items[0].Reason())
	}
	if files := testutil.ListFiles(t, store.Fs(), root); len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}
}

func TestExecute_FailureDoesNotStopBatch(t *testing.T) {
	tasks := sampleTasks(t)
	synth := &testutil.StubSynthesizer{Errors: map[string]error{tasks[0].Text: errors.New("boom")}}
	exec, store := newTestExecutor(synth, &testutil.RecordingThrottle{})

	results, err := exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	c := results.Counts()
	if c.Failed != 1 || c.Generated != len(tasks)-1 {
		t.Errorf("Unexpected counts %+v", c)
	}
	if results.Items[0].Outcome != Failed {
		t.Errorf("Expected first task failed, got %s", results.Items[0].Outcome)
	}
	testutil.AssertFileNotExists(t, store.Fs(), store.Path(tasks[0].TargetPath))

	// a later run retries only the failed task
	synth.Errors = nil
	before := synth.CallCount()
	results, err = exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if synth.CallCount()-before != 1 {
		t.Errorf("Expected exactly one retry call, got %d", synth.CallCount()-before)
	}
	if results.Items[0].Outcome != Generated {
		t.Errorf("Expected retried task generated, got %s", results.Items[0].Outcome)
	}
}

func TestExecute_TokenBucketSpacesEveryCall(t *testing.T) {
	tasks := sampleTasks(t)[:3]

	var mu sync.Mutex
	var calls []time.Time
	synth := &testutil.StubSynthesizer{OnCall: func(string) {
		mu.Lock()
		calls = append(calls, time.Now())
		mu.Unlock()
	}}

	// one call every 100ms
	store := artifact.NewStore(afero.NewMemMapFs(), root)
	exec := NewExecutor(synth, throttle.NewTokenBucket(600), store, "zh")

	if _, err := exec.Execute(context.Background(), tasks); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("Synthesize called %d times, want 3", len(calls))
	}
	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Sub(calls[i-1]); gap < 80*time.Millisecond {
			t.Errorf("gap between call %d and %d = %v, want about 100ms", i, i+1, gap)
		}
	}
}

func TestExecute_CachedSkipsDoNotThrottle(t *testing.T) {
	tasks := sampleTasks(t)[:3]
	synth := &testutil.StubSynthesizer{}
	th := &testutil.RecordingThrottle{}
	exec, store := newTestExecutor(synth, th)

	for _, task := range tasks[:2] {
		if err := store.Write(task.TargetPath, []byte("existing")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	results, err := exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if c := results.Counts(); c.Cached != 2 || c.Generated != 1 {
		t.Errorf("Unexpected counts %+v", c)
	}
	if th.Waits != 0 {
		t.Errorf("Expected no throttle wait before the first synthesize call, got %d", th.Waits)
	}
	testutil.AssertFileContent(t, store.Fs(), store.Path(tasks[0].TargetPath), []byte("existing"))
}

func TestExecute_Cancellation(t *testing.T) {
	tasks := sampleTasks(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	synth := &testutil.StubSynthesizer{}
	exec, store := newTestExecutor(synth, &testutil.RecordingThrottle{})
	exec.OnResult = func(r Result) {
		if r.Task.TargetPath == tasks[1].TargetPath {
			cancel()
		}
	}

	results, err := exec.Execute(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}

	c := results.Counts()
	if c.Generated != 2 {
		t.Errorf("Expected 2 completed tasks, got %+v", c)
	}
	if c.Cancelled != len(tasks)-2 {
		t.Errorf("Expected %d cancelled tasks, got %d", len(tasks)-2, c.Cancelled)
	}
	if synth.CallCount() != 2 {
		t.Errorf("Expected 2 synthesize calls, got %d", synth.CallCount())
	}
	if files := testutil.ListFiles(t, store.Fs(), root); len(files) != 2 {
		t.Errorf("Expected completed artifacts to stay, got %v", files)
	}
}

func TestExecute_CancelledDuringSynthesis(t *testing.T) {
	tasks := sampleTasks(t)[:2]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	synth := &testutil.StubSynthesizer{OnCall: func(string) { cancel() }}
	exec, store := newTestExecutor(synth, &testutil.RecordingThrottle{})

	results, err := exec.Execute(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(results.Items) != 0 {
		t.Errorf("Expected the interrupted task not to be recorded, got %v", results.Items)
	}
	if files := testutil.ListFiles(t, store.Fs(), root); len(files) != 0 {
		t.Errorf("Expected no files, got %v", files)
	}
}

func TestExecute_WriteFailure(t *testing.T) {
	tasks := sampleTasks(t)[:1]
	store := artifact.NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), root)
	exec := NewExecutor(&testutil.StubSynthesizer{}, nil, store, "")

	results, err := exec.Execute(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if results.Items[0].Outcome != Failed {
		t.Errorf("Expected write failure to be Failed, got %s", results.Items[0].Outcome)
	}
	if exec.Language() != "zh" {
		t.Errorf("Expected default language zh, got %s", exec.Language())
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Cached, "cached"},
		{Generated, "generated"},
		{Failed, "failed"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
