package bevi

import "testing"

type mode int

const (
	loading mode = iota
	playing
	paused
)

type edgeLog struct {
	entries []string
}

func TestInitialEnterRunsDuringBuild(t *testing.T) {
	entered := &counter{}
	app := NewApp().
		InitialState(loading).
		OnEnterState(loading, SystemFunc(func(*Context) {
			entered.n++
		})).
		Build()

	if entered.n != 1 {
		t.Fatalf("initial enter ran %d times during Build", entered.n)
	}
	app.Update()
	app.Update()
	if entered.n != 1 {
		t.Fatalf("initial enter re-ran during ticks, count %d", entered.n)
	}
}

func TestTransitionRunsExitThenEnter(t *testing.T) {
	log := &edgeLog{}
	app := NewApp().
		InitialState(loading).
		OnExitState(loading, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "exit loading")
		})).
		OnEnterState(playing, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "enter playing")
		})).
		AddSystemInState(Update, loading, SystemFunc(func(c *Context) {
			c.SetState(playing)
		})).
		Build()

	app.Update()
	want := []string{"exit loading", "enter playing"}
	if len(log.entries) != 2 || log.entries[0] != want[0] || log.entries[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, log.entries)
	}
	if app.Context().State() != playing {
		t.Fatalf("expected state playing, got %v", app.Context().State())
	}
}

func TestStatefulSystemsFilterOnSnapshot(t *testing.T) {
	loadTicks, playTicks := &counter{}, &counter{}
	app := NewApp().
		InitialState(loading).
		AddSystemInState(First, loading, SystemFunc(func(c *Context) {
			loadTicks.n++
			c.SetState(playing)
		})).
		// Scheduled after the transition request within the same tick,
		// but the snapshot taken at tick start still says loading.
		AddSystemInState(Last, playing, SystemFunc(func(*Context) {
			playTicks.n++
		})).
		Build()

	app.Update()
	if loadTicks.n != 1 || playTicks.n != 0 {
		t.Fatalf("first tick: loading=%d playing=%d", loadTicks.n, playTicks.n)
	}

	app.Update()
	if loadTicks.n != 1 || playTicks.n != 1 {
		t.Fatalf("second tick: loading=%d playing=%d", loadTicks.n, playTicks.n)
	}
}

func TestAtMostOneTransitionPerTick(t *testing.T) {
	log := &edgeLog{}
	app := NewApp().
		InitialState(loading).
		AddSystemInState(Update, loading, SystemFunc(func(c *Context) {
			c.SetState(playing)
			c.SetState(paused)
		})).
		OnEnterState(playing, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "enter playing")
		})).
		OnEnterState(paused, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "enter paused")
		})).
		Build()

	app.Update()
	// The last request wins; the intermediate state is never entered.
	if len(log.entries) != 1 || log.entries[0] != "enter paused" {
		t.Fatalf("expected only paused to be entered, got %v", log.entries)
	}
}

func TestSelfTransitionTraversesFullEdge(t *testing.T) {
	log := &edgeLog{}
	requested := false
	app := NewApp().
		InitialState(playing).
		AddSystemInState(Update, playing, SystemFunc(func(c *Context) {
			if !requested {
				requested = true
				c.SetState(playing)
			}
		})).
		OnExitState(playing, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "exit")
		})).
		OnEnterState(playing, SystemFunc(func(*Context) {
			log.entries = append(log.entries, "enter")
		})).
		Build()

	app.Update()
	// Build's initial enter plus the self-transition's exit and enter.
	want := []string{"enter", "exit", "enter"}
	if len(log.entries) != 3 {
		t.Fatalf("expected %v, got %v", want, log.entries)
	}
	for i, v := range want {
		if log.entries[i] != v {
			t.Fatalf("expected %v, got %v", want, log.entries)
		}
	}
}

func TestListenerRequestedTransitionDefersOneTick(t *testing.T) {
	enteredPaused := &counter{}
	app := NewApp().
		InitialState(loading).
		AddSystemInState(Update, loading, SystemFunc(func(c *Context) {
			c.SetState(playing)
		})).
		OnEnterState(playing, SystemFunc(func(c *Context) {
			c.SetState(paused)
		})).
		OnEnterState(paused, SystemFunc(func(*Context) {
			enteredPaused.n++
		})).
		Build()

	app.Update()
	if app.Context().State() != playing || enteredPaused.n != 0 {
		t.Fatalf("listener transition applied in the same tick: state=%v entered=%d",
			app.Context().State(), enteredPaused.n)
	}

	app.Update()
	if app.Context().State() != paused || enteredPaused.n != 1 {
		t.Fatalf("listener transition did not apply next tick: state=%v entered=%d",
			app.Context().State(), enteredPaused.n)
	}
}

func TestListenerCommandsFlushImmediately(t *testing.T) {
	app := NewApp().
		InitialState(loading).
		AddSystemInState(Update, loading, SystemFunc(func(c *Context) {
			c.SetState(playing)
		})).
		OnEnterState(playing, SystemFunc(func(c *Context) {
			c.Commands().Spawn(&health{hp: 10})
		})).
		Build()

	app.Update()
	if got := app.World().NewQuery(TypeOf[health]()).Count(); got != 1 {
		t.Fatalf("expected the listener's spawn to be flushed, found %d entities", got)
	}
}

func TestStateWithoutInitialPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when reading state of a stateless app")
		}
	}()
	app := NewApp().Build()
	app.Context().State()
}

func TestSetNilStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil transition target")
		}
	}()
	app := NewApp().InitialState(loading).Build()
	app.Context().SetState(nil)
}
