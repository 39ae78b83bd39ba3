package noteclient

import (
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// DefaultProgramId is the address the notepad program is deployed at.
var DefaultProgramId = solana.MustPublicKeyFromBase58("6zggdDfaFgYnkTiSUJk9kcpKshmaSCWQc1uDkptrWYyT")

// borsh layouts of the instruction and record formats.
type notePayload struct {
	Tag   uint8
	Title string
	Msg   string
	Owner string
}

type greetingPayload struct {
	Tag     uint8
	Counter uint32
}

type noteRecord struct {
	Title string
	Msg   string
	Owner string
}

func newNoteInstruction(tag uint8, programId solana.PublicKey, authority solana.PublicKey, title string, msg string, owner solana.PublicKey, withSystemProgram bool) (*sealevel.Instruction, error) {
	noteAddr, _, err := notepad.FindNoteAddress(authority, title, programId)
	if err != nil {
		return nil, err
	}

	data, err := borsh.Serialize(notePayload{Tag: tag, Title: title, Msg: msg, Owner: owner.String()})
	if err != nil {
		return nil, err
	}

	acctMetas := []sealevel.AccountMeta{
		{Pubkey: authority, IsSigner: true, IsWritable: true},
		{Pubkey: noteAddr, IsSigner: false, IsWritable: true},
	}
	if withSystemProgram {
		acctMetas = append(acctMetas, sealevel.AccountMeta{Pubkey: sealevel.SystemProgramAddr, IsSigner: false, IsWritable: false})
	}

	return &sealevel.Instruction{Accounts: acctMetas, Data: data, ProgramId: programId}, nil
}

// NewCreateInstruction builds a Create instruction for the note titled title
// under authority. Account order: authority, note, system program.
func NewCreateInstruction(programId solana.PublicKey, authority solana.PublicKey, title string, msg string, owner solana.PublicKey) (*sealevel.Instruction, error) {
	return newNoteInstruction(notepad.NotepadInstrTypeCreate, programId, authority, title, msg, owner, true)
}

func NewModifyInstruction(programId solana.PublicKey, authority solana.PublicKey, title string, msg string, owner solana.PublicKey) (*sealevel.Instruction, error) {
	return newNoteInstruction(notepad.NotepadInstrTypeModify, programId, authority, title, msg, owner, false)
}

func NewGreetingInstruction(programId solana.PublicKey, greetingAcct solana.PublicKey, counter uint32) (*sealevel.Instruction, error) {
	data, err := borsh.Serialize(greetingPayload{Tag: notepad.NotepadInstrTypeGreeting, Counter: counter})
	if err != nil {
		return nil, err
	}

	acctMetas := []sealevel.AccountMeta{{Pubkey: greetingAcct, IsSigner: false, IsWritable: true}}
	return &sealevel.Instruction{Accounts: acctMetas, Data: data, ProgramId: programId}, nil
}

// ExpectedNoteAccountData returns the exact account data a freshly created
// note holds.
func ExpectedNoteAccountData(title string, msg string, owner solana.PublicKey) ([]byte, error) {
	return borsh.Serialize(noteRecord{Title: title, Msg: msg, Owner: owner.String()})
}
