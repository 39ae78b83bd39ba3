package sealevel

import (
	"github.com/Overclock-Validator/notepad/pkg/cu"
	"github.com/Overclock-Validator/notepad/pkg/features"
)

func NewTestTransactionCtx(txAccts TransactionAccounts, instrStackCapacity uint64, instrTraceCapacity uint64) *TransactionCtx {
	return NewTransactionCtx(txAccts, instrStackCapacity, instrTraceCapacity)
}

// NewTestExecutionCtx builds an execution context over txAccts with the default
// compute budget, no active features and the given native programs.
func NewTestExecutionCtx(txAccts TransactionAccounts, log Logger, programs NativePrograms) *ExecutionCtx {
	return &ExecutionCtx{
		Log:                log,
		TransactionContext: NewTestTransactionCtx(txAccts, DefaultInstructionStackCapacity, DefaultInstructionTraceCapacity),
		ComputeMeter:       cu.NewComputeMeterDefault(),
		Features:           *features.NewFeaturesDefault(),
		NativePrograms:     programs,
	}
}
