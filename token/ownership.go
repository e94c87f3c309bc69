package token

// Ownership set manager: per holder, the insertion-ordered sequence of
// whole-token ids plus a reverse index from id to position. Membership
// changes are O(1) via swap-with-last removal against the index map.

// mintToken allocates the next token id and assigns it to `to`.
func (s state) mintToken(to Identity) (uint64, error) {
	if to == "" {
		return 0, ErrInvalidRecipient
	}

	minted, err := s.minted()
	if err != nil {
		return 0, err
	}
	id := minted + 1
	if err := s.setMinted(id); err != nil {
		return 0, err
	}

	// Unreachable while the counter is monotone, but cheap to verify.
	owner, err := s.ownerOf(id)
	if err != nil {
		return 0, err
	}
	if owner != "" {
		return 0, ErrAlreadyExists
	}

	if err := s.setOwnerOf(id, to); err != nil {
		return 0, err
	}
	ids, err := s.owned(to)
	if err != nil {
		return 0, err
	}
	ids = append(ids, id)
	if err := s.setOwned(to, ids); err != nil {
		return 0, err
	}
	if err := s.setOwnedIndex(id, uint64(len(ids)-1)); err != nil {
		return 0, err
	}
	return id, nil
}

// burnToken removes the most recently acquired token from `from`. Selection
// is always last-in-first-out. The lock flag is checked before any entry is
// touched so a locked token aborts the enclosing transaction with no
// mutation of its own.
func (s state) burnToken(from Identity) (uint64, error) {
	if from == "" {
		return 0, ErrInvalidSender
	}

	ids, err := s.owned(from)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrNotFound
	}
	id := ids[len(ids)-1]

	locked, err := s.locked(id)
	if err != nil {
		return 0, err
	}
	if locked {
		return 0, ErrLockedToken
	}

	if err := s.setOwned(from, ids[:len(ids)-1]); err != nil {
		return 0, err
	}
	if err := s.tx.Delete(ownedIndexKey(id)); err != nil {
		return 0, err
	}
	if err := s.tx.Delete(ownerOfKey(id)); err != nil {
		return 0, err
	}
	if err := s.clearApproved(id); err != nil {
		return 0, err
	}
	return id, nil
}

// moveToken reassigns an owned token from one holder to another. The caller
// has already verified ownership and authorization. Removal from the sender's
// sequence swaps the slot with the current last element, fixes that element's
// index entry, and pops the tail; when the moved id is itself the last
// element the swap is skipped so no stale index is written.
func (s state) moveToken(id uint64, from, to Identity) error {
	ids, err := s.owned(from)
	if err != nil {
		return err
	}
	pos, err := s.ownedIndex(id)
	if err != nil {
		return err
	}
	last := len(ids) - 1
	if int(pos) != last {
		ids[pos] = ids[last]
		if err := s.setOwnedIndex(ids[pos], pos); err != nil {
			return err
		}
	}
	if err := s.setOwned(from, ids[:last]); err != nil {
		return err
	}

	if err := s.clearApproved(id); err != nil {
		return err
	}

	dst, err := s.owned(to)
	if err != nil {
		return err
	}
	dst = append(dst, id)
	if err := s.setOwned(to, dst); err != nil {
		return err
	}
	if err := s.setOwnedIndex(id, uint64(len(dst)-1)); err != nil {
		return err
	}
	return s.setOwnerOf(id, to)
}
