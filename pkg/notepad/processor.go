package notepad

import (
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/features"
	"github.com/Overclock-Validator/notepad/pkg/safemath"
	"github.com/Overclock-Validator/notepad/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

const CUNotepadDefaultComputeUnits = 600

// SlotPolicy decides how Modify treats the note account's allocation.
type SlotPolicy int

const (
	// SlotPolicyExact resizes the account to exactly the re-encoded note.
	SlotPolicyExact SlotPolicy = iota
	// SlotPolicyFixed keeps the allocation made at Create, zero-filling the
	// tail when the note shrinks and refusing to grow.
	SlotPolicyFixed
)

func (policy SlotPolicy) String() string {
	switch policy {
	case SlotPolicyExact:
		return "exact"
	case SlotPolicyFixed:
		return "fixed"
	default:
		return fmt.Sprintf("SlotPolicy(%d)", int(policy))
	}
}

func ParseSlotPolicy(s string) (SlotPolicy, error) {
	switch s {
	case "exact", "":
		return SlotPolicyExact, nil
	case "fixed":
		return SlotPolicyFixed, nil
	default:
		return 0, fmt.Errorf("unknown slot policy %q", s)
	}
}

type Program struct {
	MaxAccountLen uint64
	SlotPolicy    SlotPolicy
}

func NewProgram() *Program {
	return &Program{MaxAccountLen: MaxNoteAccountLen, SlotPolicy: SlotPolicyExact}
}

var defaultProgram = NewProgram()

// Execute is the notepad entrypoint with the default program settings.
func Execute(execCtx *sealevel.ExecutionCtx) error {
	return defaultProgram.Execute(execCtx)
}

func (program *Program) Execute(execCtx *sealevel.ExecutionCtx) error {
	err := execCtx.ComputeMeter.Consume(CUNotepadDefaultComputeUnits)
	if err != nil {
		return err
	}

	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	execCtx.ProgramLog("Beginning processing")

	instr, err := UnmarshalInstruction(instrCtx.Data)
	if err != nil {
		klog.Errorf("notepad: failed to decode instruction: %s", err)
		execCtx.ProgramLog("%s", errorMessages[err])
		return err
	}

	execCtx.ProgramLog("Instruction unpacked")

	switch instr := instr.(type) {
	case *GreetingInstr:
		err = program.processGreeting(execCtx, instr.Counter)
	case *CreateInstr:
		err = program.processCreate(execCtx, &instr.NoteArgs)
	case *ModifyInstr:
		err = program.processModify(execCtx, &instr.NoteArgs)
	default:
		err = NotepadErrUnknownInstruction
	}

	if msg, ok := errorMessages[err]; ok {
		execCtx.ProgramLog("%s", msg)
	}
	return err
}

func (program *Program) deriveNoteAddress(execCtx *sealevel.ExecutionCtx, authority solana.PublicKey, title string, programId solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := FindNoteAddress(authority, title, programId)
	if err != nil {
		execCtx.ProgramLog("title %q cannot be used as an address seed", title)
		return addr, bump, err
	}

	attempts := uint64(256) - uint64(bump)
	err = execCtx.ComputeMeter.Consume(attempts * sealevel.CUCreateProgramAddressUnits)
	if err != nil {
		return addr, bump, err
	}

	return addr, bump, nil
}

// signingAuthority returns the key of instruction account 0, which must have
// signed.
func signingAuthority(txCtx *sealevel.TransactionCtx, instrCtx *sealevel.InstructionCtx) (solana.PublicKey, error) {
	authority, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !authority.IsSigner() {
		klog.Errorf("notepad: authority %s did not sign", authority.Key())
		return solana.PublicKey{}, NotepadErrUnauthorized
	}
	return authority.Key(), nil
}

func (program *Program) processCreate(execCtx *sealevel.ExecutionCtx, args *NoteArgs) error {
	execCtx.ProgramLog("Adding Note ...")
	execCtx.ProgramLog("Message: %s", args.Msg)
	execCtx.ProgramLog("Title: %s", args.Title)

	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(3)
	if err != nil {
		return err
	}

	programId, err := instrCtx.LastProgramKey(txCtx)
	if err != nil {
		return err
	}

	authority, err := signingAuthority(txCtx, instrCtx)
	if err != nil {
		return err
	}

	owner, err := solana.PublicKeyFromBase58(args.Owner)
	if err != nil {
		klog.Errorf("notepad: invalid owner %q: %s", args.Owner, err)
		return NotepadErrSchemaMismatch
	}

	noteAddr, bump, err := program.deriveNoteAddress(execCtx, authority, args.Title, programId)
	if err != nil {
		return err
	}

	noteAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}

	if noteAcct.Key() != noteAddr || noteAcct.Key() == authority {
		klog.Errorf("Create: note address %s does not match derived address %s", noteAcct.Key(), noteAddr)
		return NotepadErrAddressMismatch
	}

	if len(noteAcct.Data()) != 0 || noteAcct.Lamports() != 0 || noteAcct.Owner() != sealevel.SystemProgramAddr {
		klog.Errorf("Create: note %s already exists", noteAddr)
		return NotepadErrAlreadyExists
	}

	note := NoteAccount{Title: args.Title, Msg: args.Msg, Owner: owner}
	accountLen := note.Size()
	if accountLen > program.MaxAccountLen {
		klog.Errorf("Create: note length %d exceeds %d", accountLen, program.MaxAccountLen)
		return NotepadErrCapacityExceeded
	}

	createAcctInstr := sealevel.NewCreateAccountInstruction(authority, noteAddr, 0, accountLen, programId)
	signerSeeds := append(noteSeeds(authority, args.Title), []byte{bump})
	err = execCtx.NativeInvokeSigned(*createAcctInstr, [][][]byte{signerSeeds})
	if err != nil {
		return err
	}

	execCtx.ProgramLog("PDA created: %s", noteAddr)

	data, err := note.Marshal()
	if err != nil {
		return NotepadErrSchemaMismatch
	}

	execCtx.ProgramLog("serializing account")
	err = noteAcct.SetData(data)
	if err != nil {
		return err
	}
	execCtx.ProgramLog("state account serialized")

	return nil
}

func (program *Program) processModify(execCtx *sealevel.ExecutionCtx, args *NoteArgs) error {
	execCtx.ProgramLog("Modifying Note ...")
	execCtx.ProgramLog("Message: %s", args.Msg)
	execCtx.ProgramLog("Title: %s", args.Title)

	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(2)
	if err != nil {
		return err
	}

	programId, err := instrCtx.LastProgramKey(txCtx)
	if err != nil {
		return err
	}

	authority, err := signingAuthority(txCtx, instrCtx)
	if err != nil {
		return err
	}

	newOwner, err := solana.PublicKeyFromBase58(args.Owner)
	if err != nil {
		klog.Errorf("notepad: invalid owner %q: %s", args.Owner, err)
		return NotepadErrSchemaMismatch
	}

	noteAddr, _, err := program.deriveNoteAddress(execCtx, authority, args.Title, programId)
	if err != nil {
		return err
	}

	noteAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 1)
	if err != nil {
		return err
	}

	if noteAcct.Key() == authority {
		klog.Errorf("Modify: note account %s is the authority", authority)
		return NotepadErrAddressMismatch
	}

	derived := noteAcct.Key() == noteAddr
	if !derived && !execCtx.Features.IsActive(features.DelegatedNoteModify) {
		klog.Errorf("Modify: note address %s does not match derived address %s", noteAcct.Key(), noteAddr)
		return NotepadErrAddressMismatch
	}

	if noteAcct.Owner() != programId || len(noteAcct.Data()) == 0 {
		klog.Errorf("Modify: note %s does not exist", noteAcct.Key())
		return NotepadErrNotFound
	}

	execCtx.ProgramLog("unpacking state account")
	note, err := UnmarshalNoteAccountUnchecked(noteAcct.Data())
	if err != nil {
		return err
	}

	if !derived && note.Owner != authority {
		klog.Errorf("Modify: %s is neither the creator nor the owner (%s) of note %s", authority, note.Owner, noteAcct.Key())
		return NotepadErrUnauthorized
	}

	if note.Title != args.Title {
		klog.Errorf("Modify: stored title %q does not match %q", note.Title, args.Title)
		return NotepadErrAddressMismatch
	}

	note.Msg = args.Msg
	note.Owner = newOwner

	execCtx.ProgramLog("serializing account")
	data, err := note.Marshal()
	if err != nil {
		return NotepadErrSchemaMismatch
	}

	switch program.SlotPolicy {
	case SlotPolicyFixed:
		slotLen := len(noteAcct.Data())
		if len(data) > slotLen {
			klog.Errorf("Modify: note length %d exceeds allocated %d", len(data), slotLen)
			return NotepadErrCapacityExceeded
		}
		slot := make([]byte, slotLen)
		copy(slot, data)
		data = slot
	default:
		if uint64(len(data)) > program.MaxAccountLen {
			klog.Errorf("Modify: note length %d exceeds %d", len(data), program.MaxAccountLen)
			return NotepadErrCapacityExceeded
		}
	}

	err = noteAcct.SetData(data)
	if err != nil {
		return err
	}
	execCtx.ProgramLog("state account serialized")

	return nil
}

func (program *Program) processGreeting(execCtx *sealevel.ExecutionCtx, counter uint32) error {
	txCtx := execCtx.TransactionContext
	instrCtx, err := txCtx.CurrentInstructionCtx()
	if err != nil {
		return err
	}

	err = instrCtx.CheckNumOfInstructionAccounts(1)
	if err != nil {
		return err
	}

	programId, err := instrCtx.LastProgramKey(txCtx)
	if err != nil {
		return err
	}

	greetingAcct, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
	if err != nil {
		return err
	}

	execCtx.ProgramLog("greeting_account: %s", greetingAcct.Key())
	execCtx.ProgramLog("program_id: %s", programId)

	if greetingAcct.Owner() != programId {
		execCtx.ProgramLog("Greeted account does not have the correct program id")
		return NotepadErrUnauthorized
	}

	greeting, err := UnmarshalGreetingAccount(greetingAcct.Data())
	if err != nil {
		return err
	}

	execCtx.ProgramLog("received account's counter is %d !", greeting.Counter)
	execCtx.ProgramLog("need add counter is %d !", counter)

	greeting.Counter, err = safemath.CheckedAddU32(greeting.Counter, counter)
	if err != nil {
		return sealevel.InstrErrArithmeticOverflow
	}

	data, err := greeting.Marshal()
	if err != nil {
		return NotepadErrSchemaMismatch
	}

	err = greetingAcct.SetData(data)
	if err != nil {
		return err
	}

	execCtx.ProgramLog("set counter to %d !", greeting.Counter)
	return nil
}
