package sealevel

import (
	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/base58"
	"github.com/gagliardetto/solana-go"
)

type NativeProgramFn func(execCtx *ExecutionCtx) error

const NativeLoaderAddrStr = "NativeLoader1111111111111111111111111111111"

var NativeLoaderAddr = solana.PublicKey(base58.MustDecodeFromString(NativeLoaderAddrStr))

const SystemProgramAddrStr = "11111111111111111111111111111111"

var SystemProgramAddr = solana.PublicKey(base58.MustDecodeFromString(SystemProgramAddrStr))

// NativePrograms maps program ids to the native program entrypoints available
// to an execution context in addition to the builtin system program.
type NativePrograms map[solana.PublicKey]NativeProgramFn

func (programs NativePrograms) Register(programId solana.PublicKey, programFn NativeProgramFn) {
	programs[programId] = programFn
}

func (execCtx *ExecutionCtx) resolveNativeProgramById(programId solana.PublicKey) (NativeProgramFn, error) {
	switch programId {
	case SystemProgramAddr:
		return SystemProgramExecute, nil
	}

	if programFn, ok := execCtx.NativePrograms[programId]; ok {
		return programFn, nil
	}

	return nil, InstrErrUnsupportedProgramId
}

// NewProgramAccount returns the executable account under which a native program
// is loaded into a transaction.
func NewProgramAccount(programId solana.PublicKey) accounts.Account {
	return accounts.Account{Key: programId, Owner: NativeLoaderAddr, Executable: true, Lamports: 1}
}
