package sealevel

import (
	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/gagliardetto/solana-go"
)

const (
	DefaultInstructionStackCapacity = 5
	DefaultInstructionTraceCapacity = 64
)

type TransactionCtx struct {
	Accounts                 TransactionAccounts
	InstructionStackCapacity uint64
	InstructionTraceCapacity uint64
	instructionStack         []uint64
	instructionTrace         []*InstructionCtx
}

func NewTransactionCtx(txAccts TransactionAccounts, instrStackCapacity uint64, instrTraceCapacity uint64) *TransactionCtx {
	return &TransactionCtx{
		Accounts:                 txAccts,
		InstructionStackCapacity: instrStackCapacity,
		InstructionTraceCapacity: instrTraceCapacity,
		instructionTrace:         []*InstructionCtx{new(InstructionCtx)},
	}
}

func (txCtx *TransactionCtx) KeyOfAccountAtIndex(index uint64) (solana.PublicKey, error) {
	acct, err := txCtx.Accounts.GetAccount(index)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return acct.Key, nil
}

func (txCtx *TransactionCtx) AccountAtIndex(index uint64) (*accounts.Account, error) {
	return txCtx.Accounts.GetAccount(index)
}

func (txCtx *TransactionCtx) IndexOfAccount(pubkey solana.PublicKey) (uint64, error) {
	for idx, acct := range txCtx.Accounts.Accounts {
		if acct.Key == pubkey {
			return uint64(idx), nil
		}
	}
	return 0, InstrErrMissingAccount
}

func (txCtx *TransactionCtx) InstructionTraceLength() uint64 {
	return uint64(len(txCtx.instructionTrace)) - 1
}

func (txCtx *TransactionCtx) InstructionCtxStackHeight() uint64 {
	return uint64(len(txCtx.instructionStack))
}

func (txCtx *TransactionCtx) InstructionCtxAtIndexInTrace(index uint64) (*InstructionCtx, error) {
	if index >= uint64(len(txCtx.instructionTrace)) {
		return nil, InstrErrCallDepth
	}
	return txCtx.instructionTrace[index], nil
}

func (txCtx *TransactionCtx) InstructionCtxAtNestingLevel(nestingLevel uint64) (*InstructionCtx, error) {
	if nestingLevel >= uint64(len(txCtx.instructionStack)) {
		return nil, InstrErrCallDepth
	}
	return txCtx.InstructionCtxAtIndexInTrace(txCtx.instructionStack[nestingLevel])
}

func (txCtx *TransactionCtx) CurrentInstructionCtx() (*InstructionCtx, error) {
	level := txCtx.InstructionCtxStackHeight()
	if level == 0 {
		return nil, InstrErrCallDepth
	}
	return txCtx.InstructionCtxAtNestingLevel(level - 1)
}

// NextInstructionCtx returns the not-yet-pushed instruction context at the end
// of the trace, to be configured before Push.
func (txCtx *TransactionCtx) NextInstructionCtx() (*InstructionCtx, error) {
	return txCtx.InstructionCtxAtIndexInTrace(txCtx.InstructionTraceLength())
}

func (txCtx *TransactionCtx) Push() error {
	nestingLevel := txCtx.InstructionCtxStackHeight()
	indexInTrace := txCtx.InstructionTraceLength()

	if indexInTrace >= txCtx.InstructionTraceCapacity {
		return InstrErrMaxInstructionTraceLength
	}
	if nestingLevel >= txCtx.InstructionStackCapacity {
		return InstrErrCallDepth
	}

	txCtx.instructionTrace[indexInTrace].NestingLevel = nestingLevel
	txCtx.instructionTrace = append(txCtx.instructionTrace, new(InstructionCtx))
	txCtx.instructionStack = append(txCtx.instructionStack, indexInTrace)

	return nil
}

func (txCtx *TransactionCtx) Pop() error {
	if len(txCtx.instructionStack) == 0 {
		return InstrErrCallDepth
	}
	txCtx.instructionStack = txCtx.instructionStack[:len(txCtx.instructionStack)-1]
	return nil
}
