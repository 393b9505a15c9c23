package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/metrics"
)

// Status is the overall outcome of Run.
type Status string

const (
	Success Status = "success"
	// Partial means the cleaned data was produced but a later step failed.
	Partial Status = "partial"
	Failed  Status = "failed"
)

// ExitCode maps a status to the process exit code.
func (s Status) ExitCode() int {
	switch s {
	case Success:
		return 0
	case Partial:
		return 2
	default:
		return 1
	}
}

// RunOptions disable individual steps.
type RunOptions struct {
	SkipCheck     bool
	SkipTransform bool
	SkipLoad      bool
}

// StepResult is the timing and outcome of one step.
type StepResult struct {
	Name     string
	Err      error
	Duration time.Duration
}

// OK reports whether the step succeeded.
func (s StepResult) OK() bool { return s.Err == nil }

// Report collects everything Run produced.
type Report struct {
	RunID     string
	Steps     []StepResult
	Check     *CheckResult
	Transform *TransformResult
	Load      *LoadResult
	Status    Status
}

// Run executes check, transform and load in order. A failed check or
// transform aborts the run; a failed load leaves the cleaned files in place
// and yields Partial.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) *Report {
	rep := &Report{RunID: p.runID, Status: Success}
	log := p.log.WithField("stage", "run")
	log.Info("pipeline started")

	if opts.SkipCheck {
		log.WithField("step", StepCheck).Info("step disabled")
	} else {
		res, err := timed(p, StepCheck, func() (CheckResult, error) { return p.Check(ctx) }, rep)
		rep.Check = &res
		if err != nil {
			rep.Status = Failed
			return p.finish(rep, log)
		}
	}

	if opts.SkipTransform {
		log.WithField("step", StepTransform).Info("step disabled")
	} else {
		res, err := timed(p, StepTransform, func() (TransformResult, error) { return p.Transform(ctx) }, rep)
		rep.Transform = &res
		if err != nil {
			rep.Status = Failed
			return p.finish(rep, log)
		}
	}

	if opts.SkipLoad {
		log.WithField("step", StepLoad).Info("step disabled")
	} else {
		res, err := timed(p, StepLoad, func() (LoadResult, error) { return p.Load(ctx) }, rep)
		rep.Load = &res
		if err != nil {
			rep.Status = Partial
			log.WithField("cleaned_dir", p.cfg.Paths.CleanedDir).Warn("load failed; cleaned data is preserved")
		}
	}
	return p.finish(rep, log)
}

func timed[T any](p *Pipeline, name string, fn func() (T, error), rep *Report) (T, error) {
	start := time.Now()
	res, err := fn()
	d := time.Since(start)

	rep.Steps = append(rep.Steps, StepResult{Name: name, Err: err, Duration: d})
	metrics.RecordStep(p.cfg.Job, name, err, d)

	l := p.log.WithFields(logrus.Fields{"step": name, "duration": d.Truncate(time.Millisecond)})
	if err != nil {
		l.WithError(err).Error("step failed")
	} else {
		l.Info("step completed")
	}
	return res, err
}

func (p *Pipeline) finish(rep *Report, log logrus.FieldLogger) *Report {
	log.WithFields(logrus.Fields{
		"status":    rep.Status,
		"completed": rep.Completed(),
		"steps":     len(rep.Steps),
		"duration":  rep.Total().Truncate(time.Millisecond),
	}).Info("pipeline finished")
	return rep
}

// Completed counts the successful steps.
func (r *Report) Completed() int {
	n := 0
	for _, s := range r.Steps {
		if s.OK() {
			n++
		}
	}
	return n
}

// Total is the summed duration of the steps that ran.
func (r *Report) Total() time.Duration {
	var d time.Duration
	for _, s := range r.Steps {
		d += s.Duration
	}
	return d
}

// WriteSummary prints the execution timeline and the overall status.
func (r *Report) WriteSummary(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Execution timeline:\n")
	for i, s := range r.Steps {
		mark := "ok"
		if !s.OK() {
			mark = "FAILED"
		}
		fmt.Fprintf(&b, "  %d. %-10s %-6s %.2fs\n", i+1, s.Name, mark, s.Duration.Seconds())
	}
	fmt.Fprintf(&b, "\nTotal execution time: %.2fs\n", r.Total().Seconds())
	fmt.Fprintf(&b, "Steps completed: %d/%d\n", r.Completed(), len(r.Steps))
	if r.Transform != nil {
		fmt.Fprintf(&b, "Cleaned files: %d\n", len(r.Transform.Written))
	}
	if r.Load != nil && len(r.Load.Verification.Counts) > 0 {
		b.WriteString("\nRow counts:\n")
		for _, c := range r.Load.Verification.Counts {
			mark := "ok"
			if !c.Match() {
				mark = "MISMATCH"
			}
			fmt.Fprintf(&b, "  %-12s %6d / %-6d %s\n", c.Table, c.Actual, c.Expected, mark)
		}
	}
	fmt.Fprintf(&b, "\nStatus: %s\n", strings.ToUpper(string(r.Status)))

	_, err := io.WriteString(w, b.String())
	return err
}
