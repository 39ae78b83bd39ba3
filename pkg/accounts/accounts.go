package accounts

import (
	"bytes"
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Accounts is an account store keyed by public key. A key with no stored
// account yields an empty, system-owned account.
type Accounts interface {
	GetAccount(pubkey *[32]byte) (*Account, error)
	SetAccount(pubkey *[32]byte, acc *Account) error
}

type AccountsDb interface {
	Accounts
	Close() error
}

type Account struct {
	Key        solana.PublicKey
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
}

func emptyAccount(pubkey *[32]byte) *Account {
	return &Account{Key: *pubkey, Owner: solana.SystemProgramID}
}

// IsEmpty reports whether the account holds no data and no lamports and is owned by
// the system program.
func (a *Account) IsEmpty() bool {
	return len(a.Data) == 0 && a.Lamports == 0 && a.Owner == solana.SystemProgramID
}

func (a *Account) Clone() *Account {
	clone := *a
	clone.Data = make([]byte, len(a.Data))
	copy(clone.Data, a.Data)
	return &clone
}

func (a *Account) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.Lamports, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	var dataLen uint64
	dataLen, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	if dataLen > uint64(decoder.Remaining()) {
		return io.ErrUnexpectedEOF
	}
	a.Data, err = decoder.ReadNBytes(int(dataLen))
	if err != nil {
		return err
	}
	owner, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(a.Owner[:], owner)
	a.Executable, err = decoder.ReadBool()
	if err != nil {
		return err
	}
	a.RentEpoch, err = decoder.ReadUint64(bin.LE)
	return
}

func (a *Account) MarshalWithEncoder(encoder *bin.Encoder) error {
	_ = encoder.WriteUint64(a.Lamports, bin.LE)
	_ = encoder.WriteUint64(uint64(len(a.Data)), bin.LE)
	_ = encoder.WriteBytes(a.Data, false)
	_ = encoder.WriteBytes(a.Owner[:], false)
	_ = encoder.WriteBool(a.Executable)
	return encoder.WriteUint64(a.RentEpoch, bin.LE)
}

func marshalAccount(acct *Account) ([]byte, error) {
	writer := new(bytes.Buffer)
	encoder := bin.NewBinEncoder(writer)
	err := acct.MarshalWithEncoder(encoder)
	if err != nil {
		return nil, err
	}
	return writer.Bytes(), nil
}

func unmarshalAccount(pubkey *[32]byte, acctBytes []byte) (*Account, error) {
	decoder := bin.NewBinDecoder(acctBytes)
	acct := new(Account)
	err := acct.UnmarshalWithDecoder(decoder)
	if err != nil {
		return nil, err
	}
	acct.Key = *pubkey
	return acct, nil
}
