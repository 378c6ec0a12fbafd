package batch

import (
	"fmt"

	"github.com/samber/lo"

	"countdown/countdown"
)

// JobOptions are the job fields shared by every job of a batch.
type JobOptions struct {
	FPS             int
	Layout          countdown.Layout
	RingsMaxHours   int
	CountUp         bool
	EndOnZero       bool
	AlwaysShowHours bool
	ShowStats       bool
	Estimate        countdown.EstimatePolicy
}

// Registry is the immutable table a batch is enumerated from.
type Registry struct {
	Durations []int
	Fonts     []string
	Variants  []countdown.ColorVariant
	Options   JobOptions
}

// Validate checks that the registry yields at least one valid job.
func (r Registry) Validate() error {
	if len(r.Durations) == 0 || len(r.Fonts) == 0 || len(r.Variants) == 0 {
		return fmt.Errorf("%w: registry needs durations, fonts and variants (got %d, %d, %d)",
			countdown.ErrConfiguration, len(r.Durations), len(r.Fonts), len(r.Variants))
	}
	for _, j := range r.Jobs() {
		if err := j.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Jobs enumerates font, then duration, then variant. Repeated entries are
// dropped, keeping the first occurrence.
func (r Registry) Jobs() []countdown.Job {
	durations := lo.Uniq(r.Durations)
	fonts := lo.Uniq(r.Fonts)
	variants := lo.Uniq(r.Variants)

	jobs := make([]countdown.Job, 0, len(durations)*len(fonts)*len(variants))
	for _, font := range fonts {
		for _, d := range durations {
			for _, v := range variants {
				jobs = append(jobs, r.job(d, font, v))
			}
		}
	}
	return jobs
}

func (r Registry) job(duration int, font string, v countdown.ColorVariant) countdown.Job {
	o := r.Options
	return countdown.Job{
		DurationSeconds: duration,
		FPS:             o.FPS,
		Variant:         v,
		FontID:          font,
		Layout:          o.Layout,
		RingsMaxHours:   o.RingsMaxHours,
		CountUp:         o.CountUp,
		EndOnZero:       o.EndOnZero,
		AlwaysShowHours: o.AlwaysShowHours,
		ShowStats:       o.ShowStats,
		Estimate:        o.Estimate,
	}
}
