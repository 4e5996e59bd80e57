package activitylog

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestLog_SizeIsMinOfPushesAndCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{1, 2, 5, 30} {
		for n := 0; n <= capacity*2+1; n++ {
			l := New(capacity)
			for i := 0; i < n; i++ {
				l.Push(fmt.Sprintf("e%d", i))
			}
			want := n
			if want > capacity {
				want = capacity
			}
			if l.Size() != want {
				t.Fatalf("cap=%d n=%d: Size() = %d; want %d", capacity, n, l.Size(), want)
			}
			if l.IsFull() != (want == capacity) {
				t.Fatalf("cap=%d n=%d: IsFull() = %v", capacity, n, l.IsFull())
			}
			if l.IsEmpty() != (n == 0) {
				t.Fatalf("cap=%d n=%d: IsEmpty() = %v", capacity, n, l.IsEmpty())
			}
		}
	}
}

func TestLog_DumpKeepsMostRecentInPushOrder(t *testing.T) {
	t.Parallel()

	l := New(3)
	for i := 1; i <= 5; i++ {
		l.Push(fmt.Sprintf("e%d", i))
	}
	if got, want := l.Dump(), "e3\ne4\ne5\n"; got != want {
		t.Fatalf("Dump() = %q; want %q", got, want)
	}
	if got := strings.Join(l.Entries(), ","); got != "e3,e4,e5" {
		t.Fatalf("Entries() = %q", got)
	}
}

func TestLog_EmptyMarkers(t *testing.T) {
	t.Parallel()

	l := New(4)
	if l.Peek() != "none" {
		t.Fatalf("Peek() on empty = %q", l.Peek())
	}
	if l.Dump() != "empty\n" {
		t.Fatalf("Dump() on empty = %q", l.Dump())
	}
	if l.Pop() != "" {
		t.Fatalf("Pop() on empty should be empty string")
	}
}

func TestLog_PeekReturnsNewest(t *testing.T) {
	t.Parallel()

	l := New(2)
	for _, e := range []string{"a", "b", "c", "d"} {
		l.Push(e)
		if l.Peek() != e {
			t.Fatalf("Peek() = %q; want %q", l.Peek(), e)
		}
	}
}

func TestLog_PopIsFIFO(t *testing.T) {
	t.Parallel()

	l := New(3)
	l.Push("a")
	l.Push("b")
	l.Push("c")
	l.Push("d") // evicts a

	for _, want := range []string{"b", "c", "d"} {
		if got := l.Pop(); got != want {
			t.Fatalf("Pop() = %q; want %q", got, want)
		}
	}
	if !l.IsEmpty() || l.Peek() != "none" {
		t.Fatalf("log should be empty after popping everything")
	}

	// ring indices wrap correctly after draining
	l.Push("x")
	if l.Dump() != "x\n" || l.Peek() != "x" {
		t.Fatalf("unexpected state after refill: %q", l.Dump())
	}
}

func TestNew_InvalidCapacityFallsBack(t *testing.T) {
	t.Parallel()

	if New(0).Cap() != DefaultCapacity {
		t.Fatalf("New(0).Cap() = %d", New(0).Cap())
	}
	if New(-5).Cap() != DefaultCapacity {
		t.Fatalf("New(-5).Cap() = %d", New(-5).Cap())
	}
}

func TestLog_ConcurrentPush(t *testing.T) {
	t.Parallel()

	l := New(30)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Push(fmt.Sprintf("g%d-%d", g, i))
				_ = l.Peek()
			}
		}(g)
	}
	wg.Wait()

	if l.Size() != 30 {
		t.Fatalf("Size() = %d; want 30", l.Size())
	}
}
