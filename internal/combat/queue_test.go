package combat

import (
	"errors"
	"testing"

	"github.com/samdwyer/encounter/internal/entity"
)

func TestActionQueueFlushOrdersByPriority(t *testing.T) {
	a := newUnit("A", entity.SidePlayer, 10)
	q := NewActionQueue(nil)

	low := NewPassAction(a)
	high := NewPassAction(a)
	high.Priority = 10
	mid := NewPassAction(a)
	mid.Priority = 5

	for _, act := range []*Action{low, high, mid} {
		if err := q.Add(act); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if got := q.Flush(); got != 3 {
		t.Fatalf("Flush() = %d, want 3", got)
	}
	if len(q.Pending()) != 0 {
		t.Errorf("Pending() after Flush = %d actions, want 0", len(q.Pending()))
	}

	want := []*Action{high, mid, low}
	for i, w := range want {
		if got := q.Dequeue(); got != w {
			t.Errorf("Dequeue() #%d = %v, want %v", i, got, w)
		}
	}
	if q.Dequeue() != nil {
		t.Error("Dequeue() on empty queue should return nil")
	}
}

func TestActionQueueTiesKeepSubmissionOrder(t *testing.T) {
	q := NewActionQueue(ByPriority)
	var submitted []*Action
	for _, name := range []string{"A", "B", "C", "D"} {
		act := NewPassAction(newUnit(name, entity.SidePlayer, 10))
		submitted = append(submitted, act)
		if err := q.Add(act); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}
	q.Flush()

	for i, w := range submitted {
		got := q.Dequeue()
		if got != w {
			t.Errorf("Dequeue() #%d = %v, want %v", i, got, w)
		}
		if got.Seq() != uint64(i+1) {
			t.Errorf("Seq() = %d, want %d", got.Seq(), i+1)
		}
	}
}

func TestActionQueueCustomCompare(t *testing.T) {
	// Reverse submission order.
	q := NewActionQueue(func(a, b *Action) int {
		return int(b.Seq()) - int(a.Seq())
	})
	first := NewPassAction(newUnit("A", entity.SidePlayer, 10))
	second := NewPassAction(newUnit("B", entity.SidePlayer, 10))
	_ = q.Add(first)
	_ = q.Add(second)
	q.Flush()

	if got := q.Dequeue(); got != second {
		t.Errorf("Dequeue() = %v, want %v", got, second)
	}
}

func TestActionQueueRejectsDuplicates(t *testing.T) {
	q := NewActionQueue(nil)
	act := NewPassAction(newUnit("A", entity.SidePlayer, 10))

	if err := q.Add(act); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := q.Add(act); err == nil {
		t.Error("Add() of the same action twice should fail")
	}
	if got := len(q.Pending()); got != 1 {
		t.Errorf("Pending() = %d actions, want 1", got)
	}
}

func TestActionQueueRejectsReleased(t *testing.T) {
	q := NewActionQueue(nil)
	act := NewPassAction(newUnit("A", entity.SidePlayer, 10))
	act.release()

	if err := q.Add(act); !errors.Is(err, ErrActionReleased) {
		t.Errorf("Add(released) error = %v, want ErrActionReleased", err)
	}
}

func TestActionQueueFlushAppendsBehindQueued(t *testing.T) {
	q := NewActionQueue(nil)
	a := newUnit("A", entity.SidePlayer, 10)

	old := NewPassAction(a)
	_ = q.Add(old)
	q.Flush()

	urgent := NewGuardAction(a)
	_ = q.Add(urgent)
	q.Flush()

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if got := q.Dequeue(); got != old {
		t.Errorf("first Dequeue() = %v, want the older action", got)
	}
	if got := q.Dequeue(); got != urgent {
		t.Errorf("second Dequeue() = %v, want the guard", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindAbility, "ability"},
		{KindGuard, "guard"},
		{KindPass, "pass"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestActionCompleteIsIdempotent(t *testing.T) {
	act := NewPassAction(newUnit("A", entity.SidePlayer, 10))
	if act.Completed() {
		t.Fatal("new action should not be completed")
	}
	act.Complete()
	act.Complete()
	if !act.Completed() {
		t.Error("Completed() should be true after Complete()")
	}
	select {
	case <-act.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestActionLiteralCompletes(t *testing.T) {
	act := &Action{Kind: KindPass, Owner: newUnit("A", entity.SidePlayer, 10)}
	done := act.Done()
	act.Complete()
	select {
	case <-done:
	default:
		t.Fatal("Done() from before Complete() should be closed")
	}
	if !act.Completed() {
		t.Error("Completed() should be true after Complete()")
	}

	queued := &Action{Kind: KindPass, Owner: newUnit("B", entity.SidePlayer, 10)}
	q := NewActionQueue(nil)
	if err := q.Add(queued); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	queued.Complete()
	if !queued.Completed() {
		t.Error("queued literal should complete")
	}
}

func TestGuardActionPriority(t *testing.T) {
	a := newUnit("A", entity.SidePlayer, 10)
	g := NewGuardAction(a)
	if g.Priority != PriorityGuard {
		t.Errorf("guard Priority = %d, want %d", g.Priority, PriorityGuard)
	}
	if len(g.Targets) != 1 || g.Targets[0] != a {
		t.Error("guard should target its owner")
	}

	quick := *strike
	quick.Priority = 5
	if got := NewAbilityAction(a, &quick).Priority; got != 5 {
		t.Errorf("ability action Priority = %d, want 5", got)
	}
}
