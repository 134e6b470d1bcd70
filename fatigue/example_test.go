package fatigue_test

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/katalvlaran/lae/fatigue"
)

// ExampleScheduler_SubmitAll fans four tasks out over two workers and waits.
func ExampleScheduler_SubmitAll() {
	s, _ := fatigue.New(2, fatigue.WithSeed(1))
	defer func() { _ = s.Shutdown(context.Background()) }()

	var sum atomic.Int64
	tasks := make([]fatigue.Task, 4)
	for i := range tasks {
		v := int64(i + 1)
		tasks[i] = func() error { sum.Add(v); return nil }
	}

	_ = s.SubmitAll(context.Background(), tasks)
	fmt.Println(sum.Load(), s.InFlight())
	// Output:
	// 10 0
}
