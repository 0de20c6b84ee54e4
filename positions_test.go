package brokerage

import "testing"

func TestPositionLedger_ApplyBuy(t *testing.T) {
	l := NewPositionLedger()

	l.ApplyBuy(1, 10, Q(25))
	pos, ok := l.Get(1, 10)
	if !ok || !pos.Quantity.Equal(Q(25)) {
		t.Fatalf("after first buy, position = %v %v, want quantity 25", pos.Quantity, ok)
	}

	l.ApplyBuy(1, 10, Q(5.5))
	pos, _ = l.Get(1, 10)
	if !pos.Quantity.Equal(Q(30.5)) {
		t.Errorf("after second buy, quantity = %s, want 30.5", pos.Quantity)
	}
}

func TestPositionLedger_ApplySell_OpensShort(t *testing.T) {
	l := NewPositionLedger()

	// Selling something not currently held opens a short position,
	// by design and not an error.
	l.ApplySell(1, 10, Q(40))
	pos, ok := l.Get(1, 10)
	if !ok {
		t.Fatal("short sell did not create a position")
	}
	if !pos.Quantity.Equal(Q(-40)) {
		t.Errorf("short position quantity = %s, want -40", pos.Quantity)
	}

	// Buying against the short makes it less negative, pure addition.
	l.ApplyBuy(1, 10, Q(15))
	pos, _ = l.Get(1, 10)
	if !pos.Quantity.Equal(Q(-25)) {
		t.Errorf("after covering buy, quantity = %s, want -25", pos.Quantity)
	}
}

func TestPositionLedger_ReverseRestoresPriorState(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(l *PositionLedger) // state before the transaction under test
	}{
		{"no prior position", func(l *PositionLedger) {}},
		{"existing long position", func(l *PositionLedger) { l.ApplyBuy(1, 10, Q(100)) }},
		{"existing short position", func(l *PositionLedger) { l.ApplySell(1, 10, Q(30)) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewPositionLedger()
			tc.setup(l)
			before, existed := l.Get(1, 10)

			l.ApplyBuy(1, 10, Q(12))
			if _, _, err := l.ReverseBuy(1, 10, Q(12)); err != nil {
				t.Fatalf("ReverseBuy() error: %v", err)
			}

			after, exists := l.Get(1, 10)
			if exists != existed {
				t.Fatalf("position existence = %v, want %v", exists, existed)
			}
			if existed && !after.Quantity.Equal(before.Quantity) {
				t.Errorf("quantity after reverse = %s, want %s", after.Quantity, before.Quantity)
			}
		})
	}
}

func TestPositionLedger_ReverseIsNotImmediate(t *testing.T) {
	// Reversal may come after intervening operations on the same pair; all
	// effects are addition and subtraction, so order does not matter.
	l := NewPositionLedger()
	l.ApplyBuy(1, 10, Q(10))
	l.ApplySell(1, 10, Q(4))
	l.ApplyBuy(1, 10, Q(6))

	// Reverse the first buy only.
	pos, removed, err := l.ReverseBuy(1, 10, Q(10))
	if err != nil {
		t.Fatalf("ReverseBuy() error: %v", err)
	}
	if removed {
		t.Fatal("position removed, want it kept")
	}
	if !pos.Quantity.Equal(Q(2)) {
		t.Errorf("quantity = %s, want 2", pos.Quantity)
	}
}

func TestPositionLedger_ZeroQuantityRemoves(t *testing.T) {
	l := NewPositionLedger()
	l.ApplyBuy(1, 10, Q(7))

	pos, removed, err := l.ReverseBuy(1, 10, Q(7))
	if err != nil {
		t.Fatalf("ReverseBuy() error: %v", err)
	}
	if !removed {
		t.Fatal("reversal back to zero did not remove the position")
	}
	if !pos.Quantity.IsZero() {
		t.Errorf("removed position quantity = %s, want 0", pos.Quantity)
	}
	if _, ok := l.Get(1, 10); ok {
		t.Error("Get() returned a zero-quantity position after removal")
	}
	if got := l.For(1); len(got) != 0 {
		t.Errorf("For(1) = %v, want no positions", got)
	}
}

func TestPositionLedger_ZeroComparisonIsExact(t *testing.T) {
	l := NewPositionLedger()
	l.ApplyBuy(1, 10, Q(0.1))
	l.ApplyBuy(1, 10, Q(0.2))

	// 0.3 is not representable in binary floating point, but quantities are
	// exact decimals, so reversing 0.3 lands on exactly zero.
	_, removed, err := l.ReverseBuy(1, 10, Q(0.3))
	if err != nil {
		t.Fatalf("ReverseBuy() error: %v", err)
	}
	if !removed {
		t.Error("0.1 + 0.2 - 0.3 != 0: decimal arithmetic is not exact")
	}
}

func TestPositionLedger_ReverseMissingPosition(t *testing.T) {
	l := NewPositionLedger()
	if _, _, err := l.ReverseSell(1, 10, Q(5)); err == nil {
		t.Fatal("ReverseSell() on a missing position succeeded, want invariant violation")
	}
}

func TestPositionLedger_For(t *testing.T) {
	l := NewPositionLedger()
	l.ApplyBuy(1, 30, Q(1))
	l.ApplyBuy(1, 10, Q(2))
	l.ApplyBuy(2, 10, Q(3)) // other account
	l.ApplyBuy(1, 20, Q(4))

	got := l.For(1)
	if len(got) != 3 {
		t.Fatalf("For(1) returned %d positions, want 3", len(got))
	}
	for i, want := range []int64{10, 20, 30} {
		if got[i].SecurityID != want {
			t.Errorf("For(1)[%d].SecurityID = %d, want %d (ordered by security)", i, got[i].SecurityID, want)
		}
	}
}
