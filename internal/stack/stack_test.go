package stack

import "testing"

func TestPushPopOrder(t *testing.T) {
	t.Parallel()

	s := New[int](4)
	s.Push(1, 2, 3)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok {
			t.Fatal("Pop() on non-empty stack returned false")
		}
		if got != want {
			t.Fatalf("Pop() = %d, want %d", got, want)
		}
	}

	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack returned true")
	}
}

func TestLenAndEmpty(t *testing.T) {
	t.Parallel()

	s := New[string](0)
	if !s.Empty() || s.Len() != 0 {
		t.Fatal("new stack should be empty")
	}

	s.Push("a")
	s.Push("b")
	if s.Empty() || s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestGrowsBeyondCapacity(t *testing.T) {
	t.Parallel()

	s := New[int](1)
	for i := range 100 {
		s.Push(i)
	}
	if s.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", s.Len())
	}
}
