package bot

import "testing"

func TestBitsetSetClearTest(t *testing.T) {
	b := newBitset(130)
	for _, i := range []int{0, 1, 63, 64, 65, 127, 129} {
		if b.test(i) {
			t.Fatalf("fresh bitset has bit %d set", i)
		}
		b.set(i)
		if !b.test(i) {
			t.Fatalf("bit %d not set after set", i)
		}
		b.clear(i)
		if b.test(i) {
			t.Fatalf("bit %d still set after clear", i)
		}
	}
}

func TestBitsetOnesAscending(t *testing.T) {
	b := newBitset(200)
	want := []int{3, 64, 65, 100, 199}
	for _, i := range want {
		b.set(i)
	}

	var got []int
	b.ones(func(i int) bool {
		got = append(got, i)
		return true
	})

	if len(got) != len(want) {
		t.Fatalf("ones yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ones yielded %v, want %v", got, want)
		}
	}
	if b.count() != len(want) {
		t.Errorf("count = %d, want %d", b.count(), len(want))
	}
}

func TestBitsetZeroesStopAtLength(t *testing.T) {
	// n not a multiple of 64: the padding bits of the last word must not
	// leak out of the zeroes walk.
	b := newBitset(70)
	for i := 0; i < 70; i++ {
		b.set(i)
	}
	b.clear(5)
	b.clear(69)

	var got []int
	b.zeroes(func(i int) bool {
		got = append(got, i)
		return true
	})

	if len(got) != 2 || got[0] != 5 || got[1] != 69 {
		t.Errorf("zeroes yielded %v, want [5 69]", got)
	}
}

func TestBitsetEarlyExit(t *testing.T) {
	b := newBitset(64)
	b.set(10)
	b.set(20)
	b.set(30)

	calls := 0
	b.ones(func(i int) bool {
		calls++
		return false
	})
	if calls != 1 {
		t.Errorf("ones kept going after fn returned false (%d calls)", calls)
	}

	if first := b.firstOne(); first != 10 {
		t.Errorf("firstOne = %d, want 10", first)
	}
}
