package token

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/dojo-trading/cw404/store"
)

// withState runs fn against a fresh in-memory state transaction.
func withState(t *testing.T, fn func(s state)) {
	t.Helper()
	st := store.NewMemoryStore()
	defer st.Close()
	if err := st.Update(func(tx store.Tx) error {
		fn(state{tx})
		return nil
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
}

func TestBalanceDefaultsToZero(t *testing.T) {
	withState(t, func(s state) {
		bal, err := s.balanceOf("nobody")
		if err != nil {
			t.Fatalf("balanceOf failed: %v", err)
		}
		if !bal.IsZero() {
			t.Errorf("expected zero balance, got %s", bal.Dec())
		}
	})
}

func TestCreditDebit(t *testing.T) {
	withState(t, func(s state) {
		if err := s.credit("alice", uint256.NewInt(150)); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
		if err := s.debit("alice", uint256.NewInt(50)); err != nil {
			t.Fatalf("debit failed: %v", err)
		}
		bal, _ := s.balanceOf("alice")
		if bal.Uint64() != 100 {
			t.Errorf("expected 100, got %s", bal.Dec())
		}
	})
}

func TestDebitUnderflow(t *testing.T) {
	withState(t, func(s state) {
		s.credit("alice", uint256.NewInt(10))
		err := s.debit("alice", uint256.NewInt(11))
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("expected ErrInsufficientBalance, got %v", err)
		}
		// Balance untouched by the failed debit.
		bal, _ := s.balanceOf("alice")
		if bal.Uint64() != 10 {
			t.Errorf("expected 10, got %s", bal.Dec())
		}
	})
}

func TestCreditOverflow(t *testing.T) {
	withState(t, func(s state) {
		max := new(uint256.Int).Not(uint256.NewInt(0))
		if err := s.credit("alice", max); err != nil {
			t.Fatalf("credit failed: %v", err)
		}
		err := s.credit("alice", uint256.NewInt(1))
		if !errors.Is(err, ErrArithmeticOverflow) {
			t.Errorf("expected ErrArithmeticOverflow, got %v", err)
		}
	})
}

func TestWholeUnits(t *testing.T) {
	withState(t, func(s state) {
		unit := uint256.NewInt(100)
		tests := []struct {
			balance uint64
			want    uint64
		}{
			{0, 0},
			{99, 0},
			{100, 1},
			{199, 1},
			{200, 2},
			{1050, 10},
		}
		for _, tt := range tests {
			s.setUint256(balanceKey("holder"), uint256.NewInt(tt.balance))
			got, err := s.wholeUnits("holder", unit)
			if err != nil {
				t.Fatalf("wholeUnits failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("wholeUnits(%d) = %d, want %d", tt.balance, got, tt.want)
			}
		}
	})
}
