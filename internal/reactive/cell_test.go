package reactive

import (
	"slices"
	"testing"
)

func TestSetSameValueDoesNotNotify(t *testing.T) {
	c := New(3)
	calls := 0
	c.Subscribe(func(int, int) { calls++ })

	c.Set(3)
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestSetNotifiesOncePerChange(t *testing.T) {
	c := New("a")
	var got [][2]string
	c.Subscribe(func(n, o string) { got = append(got, [2]string{n, o}) })

	c.Set("b")
	c.Set("b")
	c.Set("c")

	want := [][2]string{{"b", "a"}, {"c", "b"}}
	if !slices.Equal(got, want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	if c.Get() != "c" {
		t.Fatalf("Get() = %q, want %q", c.Get(), "c")
	}
}

func TestNotificationOrder(t *testing.T) {
	c := New(0)
	var order []string
	c.Subscribe(func(int, int) { order = append(order, "first") })
	c.Subscribe(func(int, int) { order = append(order, "second") })
	c.Subscribe(func(int, int) { order = append(order, "third") })

	c.Set(1)

	want := []string{"first", "second", "third"}
	if !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestDepthFirstPropagation(t *testing.T) {
	a := New(0)
	b := New(0)
	var trace []string

	a.Subscribe(func(n, _ int) {
		trace = append(trace, "a1")
		b.Set(n * 10)
	})
	a.Subscribe(func(int, int) { trace = append(trace, "a2") })
	b.Subscribe(func(int, int) { trace = append(trace, "b1") })

	a.Set(1)

	want := []string{"a1", "b1", "a2"}
	if !slices.Equal(trace, want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	if b.Get() != 10 {
		t.Fatalf("b = %d, want 10", b.Get())
	}
}

func TestUnsubscribe(t *testing.T) {
	c := New(0)
	calls := 0
	unsub := c.Subscribe(func(int, int) { calls++ })

	c.Set(1)
	unsub()
	unsub()
	c.Set(2)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	c := New(0)
	var unsubSecond func()
	secondCalls := 0

	c.Subscribe(func(int, int) { unsubSecond() })
	unsubSecond = c.Subscribe(func(int, int) { secondCalls++ })

	c.Set(1)
	if secondCalls != 0 {
		t.Fatalf("secondCalls = %d, want 0", secondCalls)
	}
}

func TestSubscribeDuringNotification(t *testing.T) {
	c := New(0)
	lateCalls := 0
	c.Subscribe(func(int, int) {
		c.Subscribe(func(int, int) { lateCalls++ })
	})

	c.Set(1)
	if lateCalls != 0 {
		t.Fatalf("lateCalls = %d after first Set, want 0", lateCalls)
	}
	c.Set(2)
	if lateCalls != 1 {
		t.Fatalf("lateCalls = %d after second Set, want 1", lateCalls)
	}
}

func TestNewFuncSlices(t *testing.T) {
	c := NewFunc([]int{0, 0}, slices.Equal[[]int])
	calls := 0
	c.Subscribe(func(n, o []int) {
		calls++
		if !slices.Equal(o, []int{0, 0}) || !slices.Equal(n, []int{100, 0}) {
			t.Errorf("listener got (%v, %v)", n, o)
		}
	})

	c.Set([]int{0, 0})
	c.Set([]int{100, 0})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
