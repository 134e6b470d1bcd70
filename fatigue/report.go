// SPDX-License-Identifier: MIT

package fatigue

import (
	"fmt"
	"strings"
	"time"
)

// WorkerStat is a point-in-time snapshot of one worker.
type WorkerStat struct {
	ID          int           `yaml:"id" json:"id"`
	Factor      float64       `yaml:"factor" json:"factor"`
	Busy        time.Duration `yaml:"busy" json:"busy_ns"`
	Idle        time.Duration `yaml:"idle" json:"idle_ns"`
	Fatigue     float64       `yaml:"fatigue" json:"fatigue"`
	TasksRun    int64         `yaml:"tasks_run" json:"tasks_run"`
	TasksFailed int64         `yaml:"tasks_failed" json:"tasks_failed"`
	Alive       bool          `yaml:"alive" json:"alive"`
}

// Report summarizes the pool. It is informational only; no scheduling
// decision reads it.
type Report struct {
	Workers        []WorkerStat `yaml:"workers" json:"workers"`
	AverageFatigue float64      `yaml:"average_fatigue" json:"average_fatigue"`
	// Fairness is Σ (fatigue_i − mean)²; 0 means perfectly even load.
	Fairness float64 `yaml:"fairness" json:"fairness"`
}

// Report snapshots every worker and computes the aggregate metrics.
func (s *Scheduler) Report() Report {
	r := Report{Workers: make([]WorkerStat, len(s.workers))}
	var sum float64
	for i, w := range s.workers {
		st := WorkerStat{
			ID:          w.ID(),
			Factor:      w.Factor(),
			Busy:        w.BusyTime(),
			Idle:        w.IdleTime(),
			Fatigue:     w.Fatigue(),
			TasksRun:    w.TasksRun(),
			TasksFailed: w.TasksFailed(),
			Alive:       w.Alive(),
		}
		r.Workers[i] = st
		sum += st.Fatigue
	}
	if len(r.Workers) == 0 {
		return r
	}

	r.AverageFatigue = sum / float64(len(r.Workers))
	for _, st := range r.Workers {
		d := st.Fatigue - r.AverageFatigue
		r.Fairness += d * d
	}
	return r
}

// String renders one line per worker followed by the aggregates.
func (r Report) String() string {
	var sb strings.Builder
	for _, st := range r.Workers {
		fmt.Fprintf(&sb, "Worker %d: factor=%.2f, fatigue=%.0f, busy=%s, idle=%s, tasks=%d, failed=%d\n",
			st.ID, st.Factor, st.Fatigue, st.Busy, st.Idle, st.TasksRun, st.TasksFailed)
	}
	fmt.Fprintf(&sb, "Average fatigue: %.0f\n", r.AverageFatigue)
	fmt.Fprintf(&sb, "Fairness (sum of squared deviation): %.0f\n", r.Fairness)
	return sb.String()
}
