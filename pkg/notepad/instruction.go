package notepad

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
)

const (
	NotepadInstrTypeGreeting = iota
	NotepadInstrTypeCreate
	NotepadInstrTypeModify
)

// Instruction is one of *GreetingInstr, *CreateInstr or *ModifyInstr.
type Instruction interface {
	InstructionType() uint8
	MarshalWithEncoder(encoder *bin.Encoder) error
	UnmarshalWithDecoder(decoder *bin.Decoder) error
}

type GreetingInstr struct {
	Counter uint32
}

// NoteArgs carries the fields shared by Create and Modify. Owner is the base58
// text of the owner's public key, exactly as it travels on the wire.
type NoteArgs struct {
	Title string
	Msg   string
	Owner string
}

type CreateInstr struct {
	NoteArgs
}

type ModifyInstr struct {
	NoteArgs
}

func (instr *GreetingInstr) InstructionType() uint8 {
	return NotepadInstrTypeGreeting
}

func (instr *GreetingInstr) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint32(instr.Counter, bin.LE)
}

func (instr *GreetingInstr) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	instr.Counter, err = decoder.ReadUint32(bin.LE)
	return err
}

func (args *NoteArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := writeString(encoder, args.Title)
	if err != nil {
		return err
	}
	err = writeString(encoder, args.Msg)
	if err != nil {
		return err
	}
	return writeString(encoder, args.Owner)
}

func (args *NoteArgs) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error

	args.Title, err = readString(decoder)
	if err != nil {
		return err
	}

	args.Msg, err = readString(decoder)
	if err != nil {
		return err
	}

	args.Owner, err = readString(decoder)
	return err
}

func (instr *CreateInstr) InstructionType() uint8 {
	return NotepadInstrTypeCreate
}

func (instr *ModifyInstr) InstructionType() uint8 {
	return NotepadInstrTypeModify
}

func MarshalInstruction(instr Instruction) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)

	err := encoder.WriteUint8(instr.InstructionType())
	if err != nil {
		return nil, err
	}

	err = instr.MarshalWithEncoder(encoder)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalInstruction decodes a tagged instruction. The whole buffer must be
// consumed.
func UnmarshalInstruction(data []byte) (Instruction, error) {
	decoder := bin.NewBinDecoder(data)

	instrType, err := decoder.ReadUint8()
	if err != nil {
		return nil, NotepadErrUnknownInstruction
	}

	var instr Instruction
	switch instrType {
	case NotepadInstrTypeGreeting:
		instr = new(GreetingInstr)
	case NotepadInstrTypeCreate:
		instr = new(CreateInstr)
	case NotepadInstrTypeModify:
		instr = new(ModifyInstr)
	default:
		return nil, NotepadErrUnknownInstruction
	}

	err = instr.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, NotepadErrSchemaMismatch
	}

	if decoder.Remaining() != 0 {
		return nil, NotepadErrSchemaMismatch
	}

	return instr, nil
}
