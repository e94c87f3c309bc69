// Package token implements a hybrid ledger that tracks a single pool of
// value both as a fungible balance in fractional units and as an enumerable
// set of whole-unit tokens. Every fractional balance change keeps the
// whole-token ownership set equal to floor(balance / unit) for non-exempt
// holders, and whole-token moves adjust balances by exactly one unit.
//
// The engine runs every mutating operation inside a single store.Update, so
// any failure leaves no partial state behind. Events are emitted only after
// the transaction commits; they are notifications, never further calls back
// into the engine.
package token

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"github.com/dojo-trading/cw404/store"
)

// FundsReceiver is notified after a fungible Send targets its address.
type FundsReceiver interface {
	Receive(sender string, amount *uint256.Int, msg []byte) error
}

// TokenReceiver is notified after a SendNft targets its address.
type TokenReceiver interface {
	ReceiveNft(sender string, tokenID uint64, msg []byte) error
}

// Engine executes ledger operations against a Store and emits events to a
// sink. It holds no ledger state of its own; all durable state lives in the
// store, which keeps the engine testable with isolated state per test.
type Engine struct {
	store store.Store
	sink  EventSink
	log   *logrus.Logger

	fundsReceivers map[Identity]FundsReceiver
	tokenReceivers map[Identity]TokenReceiver
}

// NewEngine creates an engine over the given store. A nil sink discards
// events.
func NewEngine(st store.Store, sink EventSink) *Engine {
	if sink == nil {
		sink = discardSink{}
	}
	return &Engine{
		store:          st,
		sink:           sink,
		log:            logrus.StandardLogger(),
		fundsReceivers: make(map[Identity]FundsReceiver),
		tokenReceivers: make(map[Identity]TokenReceiver),
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *logrus.Logger) {
	e.log = log
}

// RegisterFundsReceiver registers a hook invoked after Send to addr.
func (e *Engine) RegisterFundsReceiver(addr string, r FundsReceiver) {
	e.fundsReceivers[Identity(addr)] = r
}

// RegisterTokenReceiver registers a hook invoked after SendNft to addr.
func (e *Engine) RegisterTokenReceiver(addr string, r TokenReceiver) {
	e.tokenReceivers[Identity(addr)] = r
}

// InstantiateMsg carries the one-time creation parameters.
type InstantiateMsg struct {
	Name              string
	Symbol            string
	Decimals          uint8
	TotalNativeSupply *uint256.Int
	Creator           string
}

// Instantiate creates the ledger: total supply = native supply × 10^decimals,
// credited entirely to the creator, who also becomes the contract owner.
func (e *Engine) Instantiate(msg InstantiateMsg) (*Event, error) {
	creator, err := ValidateIdentity(msg.Creator)
	if err != nil {
		return nil, err
	}
	native := msg.TotalNativeSupply
	if native == nil {
		native = new(uint256.Int)
	}
	// 10^78 exceeds 256 bits; larger exponents would wrap in Exp.
	if msg.Decimals > 77 {
		return nil, ErrArithmeticOverflow
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		ok, err := s.instantiated()
		if err != nil {
			return err
		}
		if ok {
			return ErrAlreadyInstantiated
		}

		unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(msg.Decimals)))
		total, overflow := new(uint256.Int).MulOverflow(native, unit)
		if overflow {
			return ErrArithmeticOverflow
		}

		if err := s.setString(keyName, msg.Name); err != nil {
			return err
		}
		if err := s.setString(keySymbol, msg.Symbol); err != nil {
			return err
		}
		if err := s.setUint64(keyDecimals, uint64(msg.Decimals)); err != nil {
			return err
		}
		if err := s.setUint256(keyTotalSupply, total); err != nil {
			return err
		}
		if err := s.setMinted(0); err != nil {
			return err
		}
		if err := s.setString(keyOwner, string(creator)); err != nil {
			return err
		}
		if err := s.setUint256(balanceKey(creator), total); err != nil {
			return err
		}

		evs = append(evs, newEvent("mint", map[string]string{
			"to":     string(creator),
			"amount": total.Dec(),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// Transfer moves a fractional amount from the caller to the recipient,
// minting and burning whole tokens as unit boundaries are crossed.
func (e *Engine) Transfer(caller, to string, amount *uint256.Int) (*Event, error) {
	return e.transfer(caller, to, amount, "transfer")
}

// Send is Transfer followed by a synchronous notification of a registered
// receiver at the target address. Hook failures are logged, not returned:
// by the time the hook runs the transfer has already committed.
func (e *Engine) Send(caller, contract string, amount *uint256.Int, msg []byte) (*Event, error) {
	ev, err := e.transfer(caller, contract, amount, "send")
	if err != nil {
		return nil, err
	}
	if r, ok := e.fundsReceivers[Identity(contract)]; ok {
		if err := r.Receive(caller, amount, msg); err != nil {
			e.log.WithError(err).WithField("contract", contract).Warn("funds receiver hook failed")
		}
	}
	return ev, nil
}

func (e *Engine) transfer(callerRaw, toRaw string, amount *uint256.Int, action string) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, ErrInvalidSender
	}
	to, err := ValidateIdentity(toRaw)
	if err != nil {
		return nil, ErrInvalidRecipient
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		sub, err := s.synchronizeTransfer(caller, to, amount)
		if err != nil {
			return err
		}
		evs = append(evs, newEvent(action, map[string]string{
			"from":   string(caller),
			"to":     string(to),
			"amount": amount.Dec(),
		}))
		evs = append(evs, sub...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"from": caller, "to": to, "amount": amount.Dec(),
	}).Debug(action)
	return e.emit(evs), nil
}

// TransferOrTransferFrom is the externally ambiguous operation: the numeric
// argument is a token id when it does not exceed the current minted counter,
// and a fractional amount otherwise. The comparison is against a mutable
// counter, so the same call can change meaning over the ledger's lifetime;
// callers intending a fractional transfer of an amount at or below the mint
// count will be misinterpreted as a token transfer. Behavior is preserved
// for compatibility; internally the two interpretations are separate paths.
func (e *Engine) TransferOrTransferFrom(caller, from, to string, amountOrID *uint256.Int) (*Event, error) {
	return e.transferFrom(caller, from, to, amountOrID, "")
}

// TransferNft moves one specific whole token from the caller to the
// recipient. The id is still subject to dual dispatch: an id above the
// minted counter falls through to the fractional interpretation.
func (e *Engine) TransferNft(caller, to string, tokenID uint64) (*Event, error) {
	return e.transferFrom(caller, caller, to, uint256.NewInt(tokenID), "transfer")
}

// SendNft is TransferNft to a contract address followed by a synchronous
// notification of a registered receiver there.
func (e *Engine) SendNft(caller, contract string, tokenID uint64, msg []byte) (*Event, error) {
	ev, err := e.transferFrom(caller, caller, contract, uint256.NewInt(tokenID), "send")
	if err != nil {
		return nil, err
	}
	if r, ok := e.tokenReceivers[Identity(contract)]; ok {
		if err := r.ReceiveNft(caller, tokenID, msg); err != nil {
			e.log.WithError(err).WithField("contract", contract).Warn("token receiver hook failed")
		}
	}
	return ev, nil
}

func (e *Engine) transferFrom(callerRaw, fromRaw, toRaw string, amountOrID *uint256.Int, label string) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}
	from, err := ValidateIdentity(fromRaw)
	if err != nil {
		return nil, ErrInvalidSender
	}
	to, err := ValidateIdentity(toRaw)
	if err != nil {
		return nil, ErrInvalidRecipient
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		minted, err := s.minted()
		if err != nil {
			return err
		}

		if !amountOrID.GtUint64(minted) {
			return e.transferToken(s, caller, from, to, amountOrID.Uint64(), label, &evs)
		}
		return e.transferFractional(s, caller, from, to, amountOrID, label, &evs)
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// transferToken is the token-id interpretation: move token `id`, adjust the
// balance ledger by exactly one unit each way, clear the token's approval.
func (e *Engine) transferToken(s state, caller, from, to Identity, id uint64, label string, evs *[]Event) error {
	owner, err := s.ownerOf(id)
	if err != nil {
		return err
	}
	if from != owner {
		return ErrInvalidSender
	}

	authorized := caller == from
	if !authorized {
		ok, err := s.approvedForAll(from, caller)
		if err != nil {
			return err
		}
		authorized = ok
	}
	if !authorized {
		spender, err := s.approved(id)
		if err != nil {
			return err
		}
		authorized = spender != "" && caller == spender
	}
	if !authorized {
		return ErrUnauthorized
	}

	// An exempt recipient would receive the token without the burn-on-exit
	// rule ever applying to it, reopening the exemption list as a mint
	// bypass. Reject outright.
	exempt, err := s.exempt(to)
	if err != nil {
		return err
	}
	if exempt {
		return ErrInvalidRecipient
	}

	unit, err := s.unit()
	if err != nil {
		return err
	}
	if err := s.debit(from, unit); err != nil {
		return err
	}
	if err := s.credit(to, unit); err != nil {
		return err
	}
	if err := s.moveToken(id, from, to); err != nil {
		return err
	}

	action := label
	if action == "" {
		action = "transfer"
	}
	*evs = append(*evs,
		newEvent(action, map[string]string{
			"from":   string(from),
			"to":     string(to),
			"amount": unit.Dec(),
		}),
		newEvent("transfer_nft", map[string]string{
			"sender":    string(from),
			"recipient": string(to),
			"token_id":  strconv.FormatUint(id, 10),
		}),
	)
	return nil
}

// transferFractional is the amount interpretation: deduct the caller's
// allowance over `from` (unless unlimited), then run the synchronization
// engine.
func (e *Engine) transferFractional(s state, caller, from, to Identity, amount *uint256.Int, label string, evs *[]Event) error {
	allowed, err := s.allowance(from, caller)
	if err != nil {
		return err
	}
	if !allowed.Eq(UnlimitedAllowance) {
		rest, underflow := new(uint256.Int).SubOverflow(allowed, amount)
		if underflow {
			return ErrInsufficientAllowance
		}
		if err := s.setAllowance(from, caller, rest); err != nil {
			return err
		}
	}

	sub, err := s.synchronizeTransfer(from, to, amount)
	if err != nil {
		return err
	}

	action := label
	if action == "" {
		action = "transfer_from"
	}
	*evs = append(*evs, newEvent(action, map[string]string{
		"from":   string(from),
		"to":     string(to),
		"amount": amount.Dec(),
		"by":     string(caller),
	}))
	*evs = append(*evs, sub...)
	return nil
}

// synchronizeTransfer moves a fractional amount and keeps the whole-token
// sets of both parties in sync with their balances. The cost is linear in
// the number of unit boundaries crossed; exemption lets designated holders
// (pools with heavy fractional churn) skip materialization entirely.
func (s state) synchronizeTransfer(from, to Identity, amount *uint256.Int) ([]Event, error) {
	unit, err := s.unit()
	if err != nil {
		return nil, err
	}
	beforeFrom, err := s.wholeUnits(from, unit)
	if err != nil {
		return nil, err
	}
	beforeTo, err := s.wholeUnits(to, unit)
	if err != nil {
		return nil, err
	}

	if err := s.debit(from, amount); err != nil {
		return nil, err
	}
	if err := s.credit(to, amount); err != nil {
		return nil, err
	}

	var evs []Event

	exemptFrom, err := s.exempt(from)
	if err != nil {
		return nil, err
	}
	if !exemptFrom {
		afterFrom, err := s.wholeUnits(from, unit)
		if err != nil {
			return nil, err
		}
		burns := beforeFrom - afterFrom
		// A holder can hold fewer materialized tokens than whole units: the
		// genesis credit assigns the full supply without minting, and an
		// address may have been exempt when its balance grew. Burn only what
		// exists.
		ids, err := s.owned(from)
		if err != nil {
			return nil, err
		}
		if uint64(len(ids)) < burns {
			burns = uint64(len(ids))
		}
		for i := uint64(0); i < burns; i++ {
			id, err := s.burnToken(from)
			if err != nil {
				return nil, err
			}
			evs = append(evs, newEvent("burn", map[string]string{
				"sender":   string(from),
				"token_id": strconv.FormatUint(id, 10),
			}))
		}
	}

	exemptTo, err := s.exempt(to)
	if err != nil {
		return nil, err
	}
	if !exemptTo {
		afterTo, err := s.wholeUnits(to, unit)
		if err != nil {
			return nil, err
		}
		for i := beforeTo; i < afterTo; i++ {
			id, err := s.mintToken(to)
			if err != nil {
				return nil, err
			}
			evs = append(evs, newEvent("mint", map[string]string{
				"owner":    string(to),
				"token_id": strconv.FormatUint(id, 10),
			}))
		}
	}

	return evs, nil
}

// Approve has the same dual dispatch as TransferOrTransferFrom: a live,
// nonzero token id sets the single-token approval (owner or operator only);
// any other value sets the caller's fractional allowance for the spender
// unconditionally.
func (e *Engine) Approve(callerRaw, spenderRaw string, amountOrID *uint256.Int) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}
	spender, err := ValidateIdentity(spenderRaw)
	if err != nil {
		return nil, err
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		minted, err := s.minted()
		if err != nil {
			return err
		}

		if !amountOrID.IsZero() && !amountOrID.GtUint64(minted) {
			id := amountOrID.Uint64()
			owner, err := s.ownerOf(id)
			if err != nil {
				return err
			}
			if caller != owner {
				ok, err := s.approvedForAll(owner, caller)
				if err != nil {
					return err
				}
				if !ok {
					return ErrUnauthorized
				}
			}
			if err := s.setApproved(id, spender); err != nil {
				return err
			}
			evs = append(evs, newEvent("approve", map[string]string{
				"sender":   string(owner),
				"spender":  string(spender),
				"token_id": strconv.FormatUint(id, 10),
			}))
			return nil
		}

		if err := s.setAllowance(caller, spender, amountOrID); err != nil {
			return err
		}
		evs = append(evs, newEvent("approve", map[string]string{
			"sender":  string(caller),
			"spender": string(spender),
			"amount":  amountOrID.Dec(),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// ApproveAll grants the operator blanket authority over the caller's tokens.
func (e *Engine) ApproveAll(caller, operator string) (*Event, error) {
	return e.setOperator(caller, operator, true, "approve_all")
}

// RevokeAll clears a previously granted operator authority.
func (e *Engine) RevokeAll(caller, operator string) (*Event, error) {
	return e.setOperator(caller, operator, false, "revoke_all")
}

func (e *Engine) setOperator(callerRaw, operatorRaw string, grant bool, action string) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}
	operator, err := ValidateIdentity(operatorRaw)
	if err != nil {
		return nil, err
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		if err := s.setApprovedForAll(caller, operator, grant); err != nil {
			return err
		}
		evs = append(evs, newEvent(action, map[string]string{
			"sender":   string(caller),
			"operator": string(operator),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// SetExemption toggles the whole-token exemption flag for target. Only the
// contract owner may call this. Enabling exemption first force-burns every
// whole token the target currently owns: otherwise an account could stash
// tokens while exempt from the burn-on-transfer-out rule, then toggle its
// exemption to mint fresh ones without ever crossing a unit boundary.
func (e *Engine) SetExemption(callerRaw, targetRaw string, enabled bool) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}
	target, err := ValidateIdentity(targetRaw)
	if err != nil {
		return nil, err
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		owner, err := s.contractOwner()
		if err != nil {
			return err
		}
		if caller != owner {
			return ErrUnauthorized
		}

		var sub []Event
		if enabled {
			ids, err := s.owned(target)
			if err != nil {
				return err
			}
			for range ids {
				id, err := s.burnToken(target)
				if err != nil {
					return err
				}
				sub = append(sub, newEvent("burn", map[string]string{
					"sender":   string(target),
					"token_id": strconv.FormatUint(id, 10),
				}))
			}
		}
		if err := s.setExempt(target, enabled); err != nil {
			return err
		}

		evs = append(evs, newEvent("set_whitelist", map[string]string{
			"address": string(target),
			"state":   strconv.FormatBool(enabled),
		}))
		evs = append(evs, sub...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// SetTokenLock toggles the burn lock on a token. Only the token's current
// owner may call this.
func (e *Engine) SetTokenLock(callerRaw string, tokenID uint64, enabled bool) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		owner, err := s.ownerOf(tokenID)
		if err != nil {
			return err
		}
		if caller != owner {
			return ErrUnauthorized
		}
		if err := s.setLocked(tokenID, enabled); err != nil {
			return err
		}
		evs = append(evs, newEvent("set_lock", map[string]string{
			"target": strconv.FormatUint(tokenID, 10),
			"state":  strconv.FormatBool(enabled),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

// SetBaseTokenURI updates the NFT metadata URI prefix. Contract owner only.
func (e *Engine) SetBaseTokenURI(callerRaw, uri string) (*Event, error) {
	caller, err := ValidateIdentity(callerRaw)
	if err != nil {
		return nil, err
	}

	var evs []Event
	err = e.store.Update(func(tx store.Tx) error {
		s := state{tx}
		if err := requireInstantiated(s); err != nil {
			return err
		}
		owner, err := s.contractOwner()
		if err != nil {
			return err
		}
		if caller != owner {
			return ErrUnauthorized
		}
		if err := s.setString(keyBaseTokenURI, uri); err != nil {
			return err
		}
		evs = append(evs, newEvent("set_token_uri", nil))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e.emit(evs), nil
}

func requireInstantiated(s state) error {
	ok, err := s.instantiated()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInstantiated
	}
	return nil
}

// emit sends all events to the sink and returns the primary (first) one.
func (e *Engine) emit(evs []Event) *Event {
	for _, ev := range evs {
		e.sink.Emit(ev)
	}
	if len(evs) == 0 {
		return nil
	}
	return &evs[0]
}
