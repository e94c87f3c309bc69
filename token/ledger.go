package token

import "github.com/holiman/uint256"

// Balance ledger: fractional-unit accounting per holder. All arithmetic is
// 256-bit unsigned; underflow on debit and overflow on credit are the error
// detection mechanisms, never wrapping.

// UnlimitedAllowance is the sentinel for an allowance that is never
// decremented by fractional transfers.
var UnlimitedAllowance = new(uint256.Int).Not(uint256.NewInt(0))

// balanceOf returns addr's fractional balance, zero for unknown holders.
func (s state) balanceOf(addr Identity) (*uint256.Int, error) {
	return s.getUint256(balanceKey(addr))
}

// credit adds amount to addr's balance.
func (s state) credit(addr Identity, amount *uint256.Int) error {
	bal, err := s.balanceOf(addr)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return ErrArithmeticOverflow
	}
	return s.setUint256(balanceKey(addr), sum)
}

// debit subtracts amount from addr's balance.
func (s state) debit(addr Identity, amount *uint256.Int) error {
	bal, err := s.balanceOf(addr)
	if err != nil {
		return err
	}
	rest, underflow := new(uint256.Int).SubOverflow(bal, amount)
	if underflow {
		return ErrInsufficientBalance
	}
	return s.setUint256(balanceKey(addr), rest)
}

// wholeUnits returns floor(balance / unit) for addr.
func (s state) wholeUnits(addr Identity, unit *uint256.Int) (uint64, error) {
	bal, err := s.balanceOf(addr)
	if err != nil {
		return 0, err
	}
	return new(uint256.Int).Div(bal, unit).Uint64(), nil
}
