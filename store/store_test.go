package store_test

import (
	"errors"
	"testing"

	"github.com/dojo-trading/cw404/store"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() store.Store {
		return store.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() store.Store {
		s, err := store.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return s
	})
}

func runStoreTests(t *testing.T, newStore func() store.Store) {
	t.Run("SetAndGet", func(t *testing.T) {
		s := newStore()
		defer s.Close()

		err := s.Update(func(tx store.Tx) error {
			return tx.Set("balance/alice", []byte("100"))
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}

		err = s.View(func(tx store.Tx) error {
			v, ok, err := tx.Get("balance/alice")
			if err != nil {
				return err
			}
			if !ok {
				t.Error("expected key to exist")
			}
			if string(v) != "100" {
				t.Errorf("expected 100, got %s", v)
			}

			_, ok, err = tx.Get("balance/bob")
			if err != nil {
				return err
			}
			if ok {
				t.Error("expected missing key")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("view failed: %v", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := newStore()
		defer s.Close()

		for _, v := range []string{"1", "2", "3"} {
			if err := s.Update(func(tx store.Tx) error {
				return tx.Set("minted", []byte(v))
			}); err != nil {
				t.Fatalf("update failed: %v", err)
			}
		}

		s.View(func(tx store.Tx) error {
			v, _, _ := tx.Get("minted")
			if string(v) != "3" {
				t.Errorf("expected 3, got %s", v)
			}
			return nil
		})
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore()
		defer s.Close()

		s.Update(func(tx store.Tx) error {
			return tx.Set("locked/1", []byte{1})
		})
		s.Update(func(tx store.Tx) error {
			return tx.Delete("locked/1")
		})
		s.View(func(tx store.Tx) error {
			_, ok, _ := tx.Get("locked/1")
			if ok {
				t.Error("expected key to be deleted")
			}
			return nil
		})

		// Deleting an absent key is not an error.
		if err := s.Update(func(tx store.Tx) error {
			return tx.Delete("locked/2")
		}); err != nil {
			t.Errorf("delete of absent key failed: %v", err)
		}
	})

	t.Run("UpdateRollsBackOnError", func(t *testing.T) {
		s := newStore()
		defer s.Close()

		s.Update(func(tx store.Tx) error {
			return tx.Set("balance/alice", []byte("100"))
		})

		boom := errors.New("boom")
		err := s.Update(func(tx store.Tx) error {
			if err := tx.Set("balance/alice", []byte("0")); err != nil {
				return err
			}
			if err := tx.Set("balance/bob", []byte("100")); err != nil {
				return err
			}
			if err := tx.Delete("balance/alice"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got: %v", err)
		}

		s.View(func(tx store.Tx) error {
			v, ok, _ := tx.Get("balance/alice")
			if !ok || string(v) != "100" {
				t.Errorf("expected alice balance untouched, got %q (ok=%v)", v, ok)
			}
			_, ok, _ = tx.Get("balance/bob")
			if ok {
				t.Error("expected bob balance to be rolled back")
			}
			return nil
		})
	})

	t.Run("ReadYourWrites", func(t *testing.T) {
		s := newStore()
		defer s.Close()

		err := s.Update(func(tx store.Tx) error {
			if err := tx.Set("owned/alice", []byte("[1]")); err != nil {
				return err
			}
			v, ok, err := tx.Get("owned/alice")
			if err != nil {
				return err
			}
			if !ok || string(v) != "[1]" {
				t.Errorf("expected write visible in same tx, got %q (ok=%v)", v, ok)
			}
			if err := tx.Delete("owned/alice"); err != nil {
				return err
			}
			_, ok, err = tx.Get("owned/alice")
			if err != nil {
				return err
			}
			if ok {
				t.Error("expected delete visible in same tx")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		s := newStore()
		s.Close()
		if err := s.Update(func(tx store.Tx) error { return nil }); err == nil {
			t.Error("expected error on closed store")
		}
	})
}
