package token

import (
	"sort"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/dojo-trading/cw404/store"
)

// Pagination bounds for the token listing queries.
const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

// TokenInfo is the fungible-side metadata of the ledger.
type TokenInfo struct {
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int
}

// ContractInfo is the whole-token-side metadata of the ledger.
type ContractInfo struct {
	Name   string
	Symbol string
}

// UserInfo is the full holder view: owned whole-token ids in insertion
// order plus the fractional balance.
type UserInfo struct {
	Owned   []uint64
	Balance *uint256.Int
}

// ExtendedInfo exposes the internals of the ownership index for a token.
type ExtendedInfo struct {
	OwnedIndex uint64
	Owner      string
}

// AllNftInfo combines ownership, approval, and metadata for one token.
type AllNftInfo struct {
	Owner    string
	Approved string
	TokenURI string
}

func (e *Engine) view(fn func(s state) error) error {
	return e.store.View(func(tx store.Tx) error {
		return fn(state{tx})
	})
}

// Balance returns the fractional balance of an address, zero if unknown.
func (e *Engine) Balance(addr string) (*uint256.Int, error) {
	var out *uint256.Int
	err := e.view(func(s state) error {
		var err error
		out, err = s.balanceOf(Identity(addr))
		return err
	})
	return out, err
}

// OwnerOf returns the owner of a token id, or "" when the id is unminted
// or burned.
func (e *Engine) OwnerOf(tokenID uint64) (string, error) {
	var out string
	err := e.view(func(s state) error {
		owner, err := s.ownerOf(tokenID)
		out = string(owner)
		return err
	})
	return out, err
}

// GetUserInfo returns the owned set and balance of an address.
func (e *Engine) GetUserInfo(addr string) (*UserInfo, error) {
	out := &UserInfo{}
	err := e.view(func(s state) error {
		ids, err := s.owned(Identity(addr))
		if err != nil {
			return err
		}
		out.Owned = ids
		out.Balance, err = s.balanceOf(Identity(addr))
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetExtendedInfo returns the owned-index position and owner of a token id.
func (e *Engine) GetExtendedInfo(tokenID uint64) (*ExtendedInfo, error) {
	out := &ExtendedInfo{}
	err := e.view(func(s state) error {
		idx, err := s.ownedIndex(tokenID)
		if err != nil {
			return err
		}
		out.OwnedIndex = idx
		owner, err := s.ownerOf(tokenID)
		out.Owner = string(owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Allowance returns the remaining fractional allowance of spender over owner.
func (e *Engine) Allowance(owner, spender string) (*uint256.Int, error) {
	var out *uint256.Int
	err := e.view(func(s state) error {
		var err error
		out, err = s.allowance(Identity(owner), Identity(spender))
		return err
	})
	return out, err
}

// IsApprovedForAll reports whether operator holds a blanket grant from owner.
func (e *Engine) IsApprovedForAll(owner, operator string) (bool, error) {
	var out bool
	err := e.view(func(s state) error {
		var err error
		out, err = s.approvedForAll(Identity(owner), Identity(operator))
		return err
	})
	return out, err
}

// IsLocked returns the lock state of a token id.
func (e *Engine) IsLocked(tokenID uint64) (bool, error) {
	var out bool
	err := e.view(func(s state) error {
		var err error
		out, err = s.locked(tokenID)
		return err
	})
	return out, err
}

// IsExempt reports whether the address is on the exemption list.
func (e *Engine) IsExempt(addr string) (bool, error) {
	var out bool
	err := e.view(func(s state) error {
		var err error
		out, err = s.exempt(Identity(addr))
		return err
	})
	return out, err
}

// NumTokens returns the total count of whole tokens ever minted.
func (e *Engine) NumTokens() (uint64, error) {
	var out uint64
	err := e.view(func(s state) error {
		var err error
		out, err = s.minted()
		return err
	})
	return out, err
}

// GetTokenInfo returns name, symbol, decimals, and total supply.
func (e *Engine) GetTokenInfo() (*TokenInfo, error) {
	out := &TokenInfo{}
	err := e.view(func(s state) error {
		ok, err := s.instantiated()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotInstantiated
		}
		if out.Name, err = s.getString(keyName); err != nil {
			return err
		}
		if out.Symbol, err = s.getString(keySymbol); err != nil {
			return err
		}
		decimals, err := s.getUint64(keyDecimals)
		if err != nil {
			return err
		}
		out.Decimals = uint8(decimals)
		out.TotalSupply, err = s.getUint256(keyTotalSupply)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetContractInfo returns the name and symbol.
func (e *Engine) GetContractInfo() (*ContractInfo, error) {
	info, err := e.GetTokenInfo()
	if err != nil {
		return nil, err
	}
	return &ContractInfo{Name: info.Name, Symbol: info.Symbol}, nil
}

// NftInfo returns the metadata URI for a token id: base URI + id.
func (e *Engine) NftInfo(tokenID uint64) (string, error) {
	var out string
	err := e.view(func(s state) error {
		base, err := s.getString(keyBaseTokenURI)
		out = base + strconv.FormatUint(tokenID, 10)
		return err
	})
	return out, err
}

// GetAllNftInfo returns ownership, approval, and metadata for one token.
func (e *Engine) GetAllNftInfo(tokenID uint64) (*AllNftInfo, error) {
	out := &AllNftInfo{}
	err := e.view(func(s state) error {
		owner, err := s.ownerOf(tokenID)
		if err != nil {
			return err
		}
		out.Owner = string(owner)
		spender, err := s.approved(tokenID)
		if err != nil {
			return err
		}
		out.Approved = string(spender)
		base, err := s.getString(keyBaseTokenURI)
		out.TokenURI = base + strconv.FormatUint(tokenID, 10)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Minter returns the contract owner (the only account allowed to manage the
// exemption list).
func (e *Engine) Minter() (string, error) {
	var out string
	err := e.view(func(s state) error {
		owner, err := s.contractOwner()
		out = string(owner)
		return err
	})
	return out, err
}

// Tokens lists the whole-token ids owned by an address, ascending, starting
// after the optional cursor. limit defaults to DefaultLimit and is capped at
// MaxLimit.
func (e *Engine) Tokens(owner string, startAfter *uint64, limit *uint32) ([]uint64, error) {
	n := pageSize(limit)
	var out []uint64
	err := e.view(func(s state) error {
		ids, err := s.owned(Identity(owner))
		if err != nil {
			return err
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		start := 0
		if startAfter != nil {
			start = sort.Search(len(ids), func(i int) bool { return ids[i] > *startAfter })
		}
		end := start + n
		if end > len(ids) {
			end = len(ids)
		}
		out = append([]uint64(nil), ids[start:end]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AllTokens lists the ids of all currently existing (minted, unburned)
// whole tokens, ascending, starting after the optional cursor.
func (e *Engine) AllTokens(startAfter *uint64, limit *uint32) ([]uint64, error) {
	n := pageSize(limit)
	var out []uint64
	err := e.view(func(s state) error {
		minted, err := s.minted()
		if err != nil {
			return err
		}
		first := uint64(1)
		if startAfter != nil {
			first = *startAfter + 1
		}
		for id := first; id <= minted && len(out) < n; id++ {
			owner, err := s.ownerOf(id)
			if err != nil {
				return err
			}
			if owner != "" {
				out = append(out, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pageSize(limit *uint32) int {
	n := uint32(DefaultLimit)
	if limit != nil {
		n = *limit
	}
	if n > MaxLimit {
		n = MaxLimit
	}
	return int(n)
}
