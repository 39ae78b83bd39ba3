package notepad

import (
	"bytes"
	"io"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MaxNoteAccountLen is the largest note account the program will allocate.
const MaxNoteAccountLen = 1000

const stringLenPrefixSize = 4

type NoteAccount struct {
	Title string
	Msg   string
	Owner solana.PublicKey
}

type GreetingAccount struct {
	Counter uint32
}

func writeString(encoder *bin.Encoder, s string) error {
	err := encoder.WriteUint32(uint32(len(s)), bin.LE)
	if err != nil {
		return err
	}
	return encoder.WriteBytes([]byte(s), false)
}

func readString(decoder *bin.Decoder) (string, error) {
	strLen, err := decoder.ReadUint32(bin.LE)
	if err != nil {
		return "", err
	}
	if uint64(strLen) > uint64(decoder.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	b, err := decoder.ReadNBytes(int(strLen))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", NotepadErrSchemaMismatch
	}
	return string(b), nil
}

func (note *NoteAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := writeString(encoder, note.Title)
	if err != nil {
		return err
	}
	err = writeString(encoder, note.Msg)
	if err != nil {
		return err
	}
	return writeString(encoder, note.Owner.String())
}

func (note *NoteAccount) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error

	note.Title, err = readString(decoder)
	if err != nil {
		return err
	}

	note.Msg, err = readString(decoder)
	if err != nil {
		return err
	}

	ownerStr, err := readString(decoder)
	if err != nil {
		return err
	}
	note.Owner, err = solana.PublicKeyFromBase58(ownerStr)
	return err
}

func (note *NoteAccount) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	err := note.MarshalWithEncoder(encoder)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Size is the encoded length of the note.
func (note *NoteAccount) Size() uint64 {
	return uint64(3*stringLenPrefixSize + len(note.Title) + len(note.Msg) + len(note.Owner.String()))
}

// UnmarshalNoteAccount decodes a note that must occupy data exactly.
func UnmarshalNoteAccount(data []byte) (*NoteAccount, error) {
	decoder := bin.NewBinDecoder(data)
	note := new(NoteAccount)
	if err := note.UnmarshalWithDecoder(decoder); err != nil {
		return nil, NotepadErrSchemaMismatch
	}
	if decoder.Remaining() != 0 {
		return nil, NotepadErrSchemaMismatch
	}
	return note, nil
}

// UnmarshalNoteAccountUnchecked decodes the note at the start of data and
// ignores anything after it, such as the zeroed tail of a fixed-size slot.
func UnmarshalNoteAccountUnchecked(data []byte) (*NoteAccount, error) {
	decoder := bin.NewBinDecoder(data)
	note := new(NoteAccount)
	if err := note.UnmarshalWithDecoder(decoder); err != nil {
		return nil, NotepadErrSchemaMismatch
	}
	return note, nil
}

func (greeting *GreetingAccount) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint32(greeting.Counter, bin.LE)
}

func (greeting *GreetingAccount) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	var err error
	greeting.Counter, err = decoder.ReadUint32(bin.LE)
	return err
}

func (greeting *GreetingAccount) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(buf)
	err := greeting.MarshalWithEncoder(encoder)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalGreetingAccount(data []byte) (*GreetingAccount, error) {
	decoder := bin.NewBinDecoder(data)
	greeting := new(GreetingAccount)
	if err := greeting.UnmarshalWithDecoder(decoder); err != nil {
		return nil, NotepadErrSchemaMismatch
	}
	if decoder.Remaining() != 0 {
		return nil, NotepadErrSchemaMismatch
	}
	return greeting, nil
}

func UnmarshalGreetingAccountUnchecked(data []byte) (*GreetingAccount, error) {
	decoder := bin.NewBinDecoder(data)
	greeting := new(GreetingAccount)
	if err := greeting.UnmarshalWithDecoder(decoder); err != nil {
		return nil, NotepadErrSchemaMismatch
	}
	return greeting, nil
}
