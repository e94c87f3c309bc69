package token

import (
	"errors"
	"testing"
)

// checkIndexes verifies the reverse index agrees with the true position of
// every id in the holder's owned sequence.
func checkIndexes(t *testing.T, s state, addr Identity) {
	t.Helper()
	ids, err := s.owned(addr)
	if err != nil {
		t.Fatalf("owned failed: %v", err)
	}
	for pos, id := range ids {
		idx, err := s.ownedIndex(id)
		if err != nil {
			t.Fatalf("ownedIndex failed: %v", err)
		}
		if idx != uint64(pos) {
			t.Errorf("index of token %d = %d, want %d", id, idx, pos)
		}
		owner, _ := s.ownerOf(id)
		if owner != addr {
			t.Errorf("owner of token %d = %q, want %q", id, owner, addr)
		}
	}
}

func TestMintAssignsSequentialIDs(t *testing.T) {
	withState(t, func(s state) {
		for want := uint64(1); want <= 3; want++ {
			id, err := s.mintToken("alice")
			if err != nil {
				t.Fatalf("mint failed: %v", err)
			}
			if id != want {
				t.Errorf("expected id %d, got %d", want, id)
			}
		}
		ids, _ := s.owned("alice")
		if len(ids) != 3 {
			t.Fatalf("expected 3 owned, got %d", len(ids))
		}
		minted, _ := s.minted()
		if minted != 3 {
			t.Errorf("expected minted 3, got %d", minted)
		}
		checkIndexes(t, s, "alice")
	})
}

func TestMintToEmptyRecipient(t *testing.T) {
	withState(t, func(s state) {
		if _, err := s.mintToken(""); !errors.Is(err, ErrInvalidRecipient) {
			t.Errorf("expected ErrInvalidRecipient, got %v", err)
		}
	})
}

func TestMintCollision(t *testing.T) {
	withState(t, func(s state) {
		// Force the defensive check: pre-own the id the counter will pick.
		s.setOwnerOf(1, "bob")
		if _, err := s.mintToken("alice"); !errors.Is(err, ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestBurnIsLIFO(t *testing.T) {
	withState(t, func(s state) {
		for i := 0; i < 3; i++ {
			s.mintToken("alice")
		}
		id, err := s.burnToken("alice")
		if err != nil {
			t.Fatalf("burn failed: %v", err)
		}
		if id != 3 {
			t.Errorf("expected last-minted id 3, got %d", id)
		}
		ids, _ := s.owned("alice")
		if len(ids) != 2 {
			t.Fatalf("expected 2 owned, got %d", len(ids))
		}
		if owner, _ := s.ownerOf(3); owner != "" {
			t.Errorf("expected token 3 unowned after burn, got %q", owner)
		}
		checkIndexes(t, s, "alice")

		// The counter never decreases: a fresh mint takes id 4.
		id, _ = s.mintToken("alice")
		if id != 4 {
			t.Errorf("expected id 4 after burn, got %d", id)
		}
	})
}

func TestBurnLockedToken(t *testing.T) {
	withState(t, func(s state) {
		s.mintToken("alice")
		s.mintToken("alice")
		s.setLocked(2, true)

		_, err := s.burnToken("alice")
		if !errors.Is(err, ErrLockedToken) {
			t.Fatalf("expected ErrLockedToken, got %v", err)
		}
		// The lock check precedes any mutation.
		ids, _ := s.owned("alice")
		if len(ids) != 2 {
			t.Errorf("expected owned set untouched, got %d ids", len(ids))
		}
		if owner, _ := s.ownerOf(2); owner != "alice" {
			t.Errorf("expected token 2 still owned, got %q", owner)
		}
		checkIndexes(t, s, "alice")
	})
}

func TestBurnEmptySet(t *testing.T) {
	withState(t, func(s state) {
		if _, err := s.burnToken("alice"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBurnClearsApproval(t *testing.T) {
	withState(t, func(s state) {
		s.mintToken("alice")
		s.setApproved(1, "spender")
		s.burnToken("alice")
		if spender, _ := s.approved(1); spender != "" {
			t.Errorf("expected approval cleared, got %q", spender)
		}
	})
}

func TestMoveTokenMiddleElement(t *testing.T) {
	withState(t, func(s state) {
		for i := 0; i < 4; i++ {
			s.mintToken("alice")
		}
		// Remove id 2 from the middle: slot 1 takes the last element (4).
		if err := s.moveToken(2, "alice", "bob"); err != nil {
			t.Fatalf("move failed: %v", err)
		}

		ids, _ := s.owned("alice")
		want := []uint64{1, 4, 3}
		if len(ids) != len(want) {
			t.Fatalf("expected %v, got %v", want, ids)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, ids)
			}
		}
		checkIndexes(t, s, "alice")
		checkIndexes(t, s, "bob")

		if owner, _ := s.ownerOf(2); owner != "bob" {
			t.Errorf("expected bob to own token 2, got %q", owner)
		}
	})
}

func TestMoveTokenLastElement(t *testing.T) {
	withState(t, func(s state) {
		for i := 0; i < 3; i++ {
			s.mintToken("alice")
		}
		// Removing the tail skips the swap; no stale index may survive for
		// the moved id.
		if err := s.moveToken(3, "alice", "bob"); err != nil {
			t.Fatalf("move failed: %v", err)
		}

		ids, _ := s.owned("alice")
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Fatalf("expected [1 2], got %v", ids)
		}
		checkIndexes(t, s, "alice")
		checkIndexes(t, s, "bob")

		idx, _ := s.ownedIndex(3)
		if idx != 0 {
			t.Errorf("expected token 3 at position 0 of bob's set, got %d", idx)
		}
	})
}

func TestMoveTokenOnlyElement(t *testing.T) {
	withState(t, func(s state) {
		s.mintToken("alice")
		if err := s.moveToken(1, "alice", "bob"); err != nil {
			t.Fatalf("move failed: %v", err)
		}
		ids, _ := s.owned("alice")
		if len(ids) != 0 {
			t.Fatalf("expected empty set, got %v", ids)
		}
		checkIndexes(t, s, "bob")
	})
}

func TestMoveTokenClearsApproval(t *testing.T) {
	withState(t, func(s state) {
		s.mintToken("alice")
		s.setApproved(1, "spender")
		s.moveToken(1, "alice", "bob")
		if spender, _ := s.approved(1); spender != "" {
			t.Errorf("expected approval cleared on transfer, got %q", spender)
		}
	})
}

func TestMintBurnRoundTrip(t *testing.T) {
	withState(t, func(s state) {
		s.mintToken("alice")
		s.mintToken("alice")
		before, _ := s.owned("alice")

		s.mintToken("alice")
		s.burnToken("alice")

		after, _ := s.owned("alice")
		if len(after) != len(before) {
			t.Fatalf("expected %v, got %v", before, after)
		}
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("expected %v, got %v", before, after)
			}
		}
		checkIndexes(t, s, "alice")

		// Only the minted counter moved.
		minted, _ := s.minted()
		if minted != 3 {
			t.Errorf("expected minted 3, got %d", minted)
		}
	})
}
