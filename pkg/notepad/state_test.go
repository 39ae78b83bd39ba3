package notepad

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWallet2 = solana.MustPublicKeyFromBase58("2egcEQF8Cbc55NUouwweanZ3scea2qiG38hzXcuLBpjS")

func lenPrefixed(s string) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(len(s)))
	return append(b, s...)
}

func expectedNoteBytes(title, msg string, owner solana.PublicKey) []byte {
	var b []byte
	b = append(b, lenPrefixed(title)...)
	b = append(b, lenPrefixed(msg)...)
	b = append(b, lenPrefixed(owner.String())...)
	return b
}

func TestNoteAccount_Marshal(t *testing.T) {
	note := NoteAccount{Title: "new note title", Msg: "test body", Owner: testWallet2}

	data, err := note.Marshal()
	require.NoError(t, err)
	assert.Equal(t, expectedNoteBytes("new note title", "test body", testWallet2), data)
	assert.Equal(t, uint64(len(data)), note.Size())
	assert.Equal(t, uint64(12+14+9+44), note.Size())

	decoded, err := UnmarshalNoteAccount(data)
	require.NoError(t, err)
	assert.Equal(t, note, *decoded)
}

func TestNoteAccount_EmptyFields(t *testing.T) {
	note := NoteAccount{}
	data, err := note.Marshal()
	require.NoError(t, err)
	assert.Equal(t, note.Size(), uint64(len(data)))

	decoded, err := UnmarshalNoteAccount(data)
	require.NoError(t, err)
	assert.Equal(t, "", decoded.Title)
	assert.Equal(t, "", decoded.Msg)
	assert.Equal(t, solana.PublicKey{}, decoded.Owner)
}

func TestNoteAccount_StrictAndPermissive(t *testing.T) {
	note := NoteAccount{Title: "t", Msg: "hello", Owner: testWallet2}
	data, err := note.Marshal()
	require.NoError(t, err)

	padded := append(append([]byte{}, data...), make([]byte, 16)...)

	_, err = UnmarshalNoteAccount(padded)
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	decoded, err := UnmarshalNoteAccountUnchecked(padded)
	require.NoError(t, err)
	assert.Equal(t, note, *decoded)
}

func TestNoteAccount_Malformed(t *testing.T) {
	note := NoteAccount{Title: "t", Msg: "hello", Owner: testWallet2}
	data, err := note.Marshal()
	require.NoError(t, err)

	_, err = UnmarshalNoteAccount(data[:len(data)-1])
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	_, err = UnmarshalNoteAccountUnchecked(data[:3])
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	var badOwner []byte
	badOwner = append(badOwner, lenPrefixed("t")...)
	badOwner = append(badOwner, lenPrefixed("hello")...)
	badOwner = append(badOwner, lenPrefixed("not-a-key")...)
	_, err = UnmarshalNoteAccount(badOwner)
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	var hugeLen []byte
	hugeLen = append(hugeLen, 0xff, 0xff, 0xff, 0x7f)
	_, err = UnmarshalNoteAccountUnchecked(hugeLen)
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	var invalidUtf8 []byte
	invalidUtf8 = append(invalidUtf8, 2, 0, 0, 0, 0xc3, 0x28)
	_, err = UnmarshalNoteAccountUnchecked(invalidUtf8)
	assert.Equal(t, NotepadErrSchemaMismatch, err)
}

func TestGreetingAccount_Codec(t *testing.T) {
	greeting := GreetingAccount{Counter: 7}
	data, err := greeting.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0}, data)

	_, err = UnmarshalGreetingAccount(append(data, 0))
	assert.Equal(t, NotepadErrSchemaMismatch, err)

	decoded, err := UnmarshalGreetingAccountUnchecked(append(data, 0))
	require.NoError(t, err)
	assert.Equal(t, uint32(7), decoded.Counter)

	_, err = UnmarshalGreetingAccount([]byte{1, 2})
	assert.Equal(t, NotepadErrSchemaMismatch, err)
}
