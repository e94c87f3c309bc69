package token

import "errors"

var (
	// Authorization errors
	ErrUnauthorized     = errors.New("cw404: unauthorized")
	ErrInvalidSender    = errors.New("cw404: invalid sender")
	ErrInvalidRecipient = errors.New("cw404: invalid recipient")
	ErrInvalidIdentity  = errors.New("cw404: invalid identity")

	// Arithmetic errors
	ErrInsufficientBalance   = errors.New("cw404: insufficient balance")
	ErrInsufficientAllowance = errors.New("cw404: insufficient allowance")
	ErrArithmeticOverflow    = errors.New("cw404: arithmetic overflow")

	// Token lifecycle errors
	ErrAlreadyExists = errors.New("cw404: token already exists")
	ErrLockedToken   = errors.New("cw404: token is locked")
	ErrNotFound      = errors.New("cw404: not found")

	// Instantiation errors
	ErrNotInstantiated     = errors.New("cw404: ledger not instantiated")
	ErrAlreadyInstantiated = errors.New("cw404: ledger already instantiated")
)
