package bevi

import (
	"time"

	"go.uber.org/zap"
)

// AppExit is the event a system emits to ask the host loop to stop
// driving the application. Shutdown is ordinary data flow: there is no
// cancellation concept inside a tick.
type AppExit struct{}

// RunnerConfig configures the default headless runner.
type RunnerConfig struct {
	// TickRate is the interval between ticks. Zero means DefaultTickRate.
	TickRate time.Duration
}

// DefaultTickRate is the tick interval used when none is configured.
const DefaultTickRate = 50 * time.Millisecond // 20 TPS

// exitFlag records, before the event channel is cleared, that an
// AppExit was emitted this tick.
type exitFlag struct {
	requested bool
}

// HeadlessRunner installs the default host loop: the AppExit event
// channel, a watcher at the Last stage, and a fixed-rate ticker runner
// that calls Update until an AppExit event is consumed.
func HeadlessRunner(b *Builder) {
	AddEvent[AppExit](b)
	InitResource[exitFlag](b)
	InitResource[RunnerConfig](b)
	b.AddSystemToStage(Last, SystemFunc(func(c *Context) {
		if len(ReadEvents[AppExit](c)) > 0 {
			Resource[exitFlag](c).requested = true
		}
	}))
	b.SetRunner(runLoop)
}

// runLoop drives the app at a fixed rate until an exit is requested.
func runLoop(a *App) {
	rate := Resource[RunnerConfig](a.Context()).TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}

	a.Logger().Info("runner started", zap.Duration("tick_rate", rate))
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	for range ticker.C {
		a.Update()
		if Resource[exitFlag](a.Context()).requested {
			a.Logger().Info("exit requested, stopping runner")
			return
		}
	}
}
