package token

import (
	"encoding/json"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/dojo-trading/cw404/store"
)

// Key layout for the persisted state. Every durable datum of the ledger
// lives under one of these keys; no other state exists.
const (
	keyOwner        = "owner"
	keyName         = "name"
	keySymbol       = "symbol"
	keyBaseTokenURI = "base_token_uri"
	keyDecimals     = "decimals"
	keyTotalSupply  = "total_supply"
	keyMinted       = "minted"
)

func balanceKey(addr Identity) string  { return "balance/" + string(addr) }
func ownerOfKey(id uint64) string      { return "owner_of/" + strconv.FormatUint(id, 10) }
func ownedKey(addr Identity) string    { return "owned/" + string(addr) }
func ownedIndexKey(id uint64) string   { return "owned_index/" + strconv.FormatUint(id, 10) }
func approvedKey(id uint64) string     { return "get_approved/" + strconv.FormatUint(id, 10) }
func lockedKey(id uint64) string       { return "locked/" + strconv.FormatUint(id, 10) }
func whitelistKey(addr Identity) string { return "whitelist/" + string(addr) }

func operatorKey(owner, operator Identity) string {
	return "approved_for_all/" + string(owner) + "/" + string(operator)
}

func allowanceKey(owner, spender Identity) string {
	return "allowance/" + string(owner) + "/" + string(spender)
}

// state wraps a store transaction with typed accessors for the ledger
// schema. Absent keys read as zero values throughout, matching the
// may_load/unwrap_or_default discipline of the storage layout.
type state struct {
	tx store.Tx
}

func (s state) getUint256(key string) (*uint256.Int, error) {
	raw, ok, err := s.tx.Get(key)
	if err != nil {
		return nil, err
	}
	v := new(uint256.Int)
	if ok {
		v.SetBytes(raw)
	}
	return v, nil
}

func (s state) setUint256(key string, v *uint256.Int) error {
	return s.tx.Set(key, v.Bytes())
}

func (s state) getUint64(key string) (uint64, error) {
	raw, ok, err := s.tx.Get(key)
	if err != nil || !ok {
		return 0, err
	}
	return strconv.ParseUint(string(raw), 10, 64)
}

func (s state) setUint64(key string, v uint64) error {
	return s.tx.Set(key, []byte(strconv.FormatUint(v, 10)))
}

func (s state) getString(key string) (string, error) {
	raw, _, err := s.tx.Get(key)
	return string(raw), err
}

func (s state) setString(key, v string) error {
	return s.tx.Set(key, []byte(v))
}

func (s state) getBool(key string) (bool, error) {
	raw, ok, err := s.tx.Get(key)
	if err != nil || !ok {
		return false, err
	}
	return len(raw) == 1 && raw[0] == 1, nil
}

func (s state) setBool(key string, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	return s.tx.Set(key, []byte{b})
}

// instantiated reports whether the ledger has been created.
func (s state) instantiated() (bool, error) {
	_, ok, err := s.tx.Get(keyTotalSupply)
	return ok, err
}

// unit returns 10^decimals, the whole-token size in fractional units.
func (s state) unit() (*uint256.Int, error) {
	decimals, err := s.getUint64(keyDecimals)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(decimals)), nil
}

// minted returns the monotone whole-token counter.
func (s state) minted() (uint64, error) {
	return s.getUint64(keyMinted)
}

func (s state) setMinted(v uint64) error {
	return s.setUint64(keyMinted, v)
}

// contractOwner returns the administrative owner set at instantiation.
func (s state) contractOwner() (Identity, error) {
	v, err := s.getString(keyOwner)
	return Identity(v), err
}

// ownerOf returns the owner of a whole token, or "" when unowned.
func (s state) ownerOf(id uint64) (Identity, error) {
	v, err := s.getString(ownerOfKey(id))
	return Identity(v), err
}

func (s state) setOwnerOf(id uint64, owner Identity) error {
	return s.setString(ownerOfKey(id), string(owner))
}

// owned returns the insertion-ordered whole-token ids held by addr.
func (s state) owned(addr Identity) ([]uint64, error) {
	raw, ok, err := s.tx.Get(ownedKey(addr))
	if err != nil || !ok {
		return nil, err
	}
	var ids []uint64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s state) setOwned(addr Identity, ids []uint64) error {
	if ids == nil {
		ids = []uint64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.tx.Set(ownedKey(addr), raw)
}

// ownedIndex returns id's position within its owner's owned sequence.
func (s state) ownedIndex(id uint64) (uint64, error) {
	return s.getUint64(ownedIndexKey(id))
}

func (s state) setOwnedIndex(id, pos uint64) error {
	return s.setUint64(ownedIndexKey(id), pos)
}

// approved returns the single approved spender for a token, or "".
func (s state) approved(id uint64) (Identity, error) {
	v, err := s.getString(approvedKey(id))
	return Identity(v), err
}

func (s state) setApproved(id uint64, spender Identity) error {
	return s.setString(approvedKey(id), string(spender))
}

func (s state) clearApproved(id uint64) error {
	return s.tx.Delete(approvedKey(id))
}

// approvedForAll reports whether operator holds a blanket grant from owner.
func (s state) approvedForAll(owner, operator Identity) (bool, error) {
	return s.getBool(operatorKey(owner, operator))
}

func (s state) setApprovedForAll(owner, operator Identity, v bool) error {
	return s.setBool(operatorKey(owner, operator), v)
}

// allowance returns the remaining fractional allowance of spender over owner.
func (s state) allowance(owner, spender Identity) (*uint256.Int, error) {
	return s.getUint256(allowanceKey(owner, spender))
}

func (s state) setAllowance(owner, spender Identity, v *uint256.Int) error {
	return s.setUint256(allowanceKey(owner, spender), v)
}

// exempt reports whether addr skips whole-token materialization.
func (s state) exempt(addr Identity) (bool, error) {
	return s.getBool(whitelistKey(addr))
}

func (s state) setExempt(addr Identity, v bool) error {
	return s.setBool(whitelistKey(addr), v)
}

// locked reports whether burning token id is forbidden.
func (s state) locked(id uint64) (bool, error) {
	return s.getBool(lockedKey(id))
}

func (s state) setLocked(id uint64, v bool) error {
	return s.setBool(lockedKey(id), v)
}
