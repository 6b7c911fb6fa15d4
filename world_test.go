package bevi

import "testing"

type position struct {
	x, y float64
}

type velocity struct {
	dx, dy float64
}

func TestSpawnAndGet(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{x: 1, y: 2}, &velocity{dx: 3})

	if !w.Alive(e) {
		t.Fatal("spawned entity should be alive")
	}
	p, ok := Component[position](w, e)
	if !ok || p.x != 1 || p.y != 2 {
		t.Fatalf("unexpected position %+v ok=%v", p, ok)
	}
	if _, ok := Component[health](w, e); ok {
		t.Fatal("entity should not have a health component")
	}
}

func TestComponentPointerSharedWithStore(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{})

	p, _ := Component[position](w, e)
	p.x = 7
	again, _ := Component[position](w, e)
	if again.x != 7 {
		t.Fatal("component mutation through the pointer was lost")
	}
}

func TestInsertMovesArchetype(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{})
	gen := w.Generation()

	w.Insert(e, &velocity{dx: 1})
	if w.Generation() != gen+1 {
		t.Fatalf("expected a new combination, generation %d -> %d", gen, w.Generation())
	}
	if _, ok := Component[velocity](w, e); !ok {
		t.Fatal("inserted component missing")
	}
}

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{}, &velocity{})

	w.Remove(e, TypeOf[velocity]())
	if _, ok := Component[velocity](w, e); ok {
		t.Fatal("removed component still present")
	}
	if _, ok := Component[position](w, e); !ok {
		t.Fatal("unrelated component lost on remove")
	}
}

func TestDespawn(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{}, &velocity{})

	w.Despawn(e)
	if w.Alive(e) {
		t.Fatal("despawned entity still alive")
	}
	if _, ok := Component[position](w, e); ok {
		t.Fatal("despawned entity still has components")
	}
	if n := w.NewQuery(TypeOf[position]()).Count(); n != 0 {
		t.Fatalf("query still matches %d entities after despawn", n)
	}
}

func TestGenerationGrowsOnlyOnNewCombinations(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})
	gen := w.Generation()

	w.Spawn(&position{})
	w.Spawn(&position{})
	if w.Generation() != gen {
		t.Fatalf("repeated combination grew the generation to %d", w.Generation())
	}

	w.Spawn(&position{}, &velocity{})
	if w.Generation() != gen+1 {
		t.Fatalf("new combination should grow the generation by one, got %d", w.Generation())
	}
}

func TestNonPointerComponentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on value component")
		}
	}()
	NewWorld().Spawn(position{})
}
