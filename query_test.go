package bevi

import "testing"

func TestQueryMatchesRequiredComponents(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})
	both := w.Spawn(&position{}, &velocity{})
	w.Spawn(&velocity{})

	q := w.NewQuery(TypeOf[position](), TypeOf[velocity]())
	if n := q.Count(); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}
	e, ok := q.Single()
	if !ok || e != both {
		t.Fatalf("expected %d, got %d ok=%v", both, e, ok)
	}
}

func TestQueryExtendsIncrementally(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})

	q := w.NewQuery(TypeOf[position]())
	if n := q.Count(); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}

	// A combination created after the query exists is still picked up.
	w.Spawn(&position{}, &velocity{})
	if n := q.Count(); n != 2 {
		t.Fatalf("expected 2 matches after new combination, got %d", n)
	}
}

func TestQueryWithout(t *testing.T) {
	w := NewWorld()
	plain := w.Spawn(&position{})
	w.Spawn(&position{}, &velocity{})

	q := w.NewQuery(TypeOf[position]()).Without(TypeOf[velocity]())
	es := q.Entities()
	if len(es) != 1 || es[0] != plain {
		t.Fatalf("expected only the plain entity, got %v", es)
	}
}

func TestQuerySingleAmbiguous(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})
	w.Spawn(&position{})

	if _, ok := w.NewQuery(TypeOf[position]()).Single(); ok {
		t.Fatal("Single should fail with two matches")
	}
	if _, ok := w.NewQuery(TypeOf[health]()).Single(); ok {
		t.Fatal("Single should fail with no matches")
	}
}

func TestQueryEach(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{x: 1})
	w.Spawn(&position{x: 2})

	sum := 0.0
	w.NewQuery(TypeOf[position]()).Each(func(e Entity) {
		p, _ := Component[position](w, e)
		sum += p.x
	})
	if sum != 3 {
		t.Fatalf("expected sum 3, got %v", sum)
	}
}

func TestQueryFollowsArchetypeMoves(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(&position{})

	q := w.NewQuery(TypeOf[position](), TypeOf[velocity]())
	if n := q.Count(); n != 0 {
		t.Fatalf("expected no match yet, got %d", n)
	}

	w.Insert(e, &velocity{})
	if n := q.Count(); n != 1 {
		t.Fatalf("expected 1 match after insert, got %d", n)
	}

	w.Remove(e, TypeOf[velocity]())
	if n := q.Count(); n != 0 {
		t.Fatalf("expected no match after remove, got %d", n)
	}
}

func TestQueryExtendIsIdempotent(t *testing.T) {
	w := NewWorld()
	w.Spawn(&position{})

	q := w.NewQuery(TypeOf[position]())
	q.Extend()
	q.Extend()
	if n := q.Count(); n != 1 {
		t.Fatalf("repeated Extend duplicated matches, count %d", n)
	}
}
