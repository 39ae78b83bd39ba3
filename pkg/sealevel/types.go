package sealevel

import (
	"github.com/gagliardetto/solana-go"
)

type Instruction struct {
	Accounts  []AccountMeta
	Data      []byte
	ProgramId solana.PublicKey
}

type AccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

type InstructionAccount struct {
	IndexInTransaction uint64
	IndexInCaller      uint64
	IndexInCallee      uint64
	IsSigner           bool
	IsWritable         bool
}

// Keys returns the distinct account keys referenced by the instruction, in
// order of first appearance, followed by the program id.
func (instr *Instruction) Keys() []solana.PublicKey {
	var keys []solana.PublicKey
	seen := make(map[solana.PublicKey]bool)

	for _, acctMeta := range instr.Accounts {
		if !seen[acctMeta.Pubkey] {
			seen[acctMeta.Pubkey] = true
			keys = append(keys, acctMeta.Pubkey)
		}
	}

	if !seen[instr.ProgramId] {
		keys = append(keys, instr.ProgramId)
	}

	return keys
}
