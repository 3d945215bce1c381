package source

import (
	"context"
	"time"
)

// DemoLines is the simulated meeting played by the demo source.
var DemoLines = []string{
	"Speaker 1 opened the meeting and reviewed the sprint goals.",
	"The team discussed blockers related to deployment and logging.",
	"An action item was assigned to Jiten to finalize the ScribeAI prototype.",
	"The team agreed to prepare a demo for stakeholders on Friday.",
}

// Scripted emits a fixed list of lines, line i at offset interval*(i+1) from Run.
type Scripted struct {
	Lines    []string
	Interval time.Duration
}

// NewDemo returns the demo meeting paced at interval.
func NewDemo(interval time.Duration) *Scripted {
	return &Scripted{Lines: DemoLines, Interval: interval}
}

// Run implements Source.
func (s *Scripted) Run(ctx context.Context, emit EmitFunc) error {
	start := time.Now()
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for i, line := range s.Lines {
		timer.Reset(time.Until(start.Add(s.Interval * time.Duration(i+1))))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := emit(line); err != nil {
			return err
		}
	}
	return nil
}
