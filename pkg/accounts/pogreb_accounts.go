package accounts

import (
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/base58"
	"github.com/akrylysov/pogreb"
)

// PogrebAccountsDb stores accounts in a pogreb hash index.
type PogrebAccountsDb struct {
	db *pogreb.DB
}

func OpenPogrebAccountsDb(dirPath string) (*PogrebAccountsDb, error) {
	db, err := pogreb.Open(dirPath, nil)
	if err != nil {
		return nil, fmt.Errorf("opening pogreb accountsdb at %s: %w", dirPath, err)
	}
	return &PogrebAccountsDb{db: db}, nil
}

func (m *PogrebAccountsDb) GetAccount(pubkey *[32]byte) (*Account, error) {
	acctBytes, err := m.db.Get(pubkey[:])
	if err != nil {
		return nil, fmt.Errorf("error whilst retrieving account %s: %w", base58.Encode(pubkey[:]), err)
	}
	if acctBytes == nil {
		return emptyAccount(pubkey), nil
	}

	acct, err := unmarshalAccount(pubkey, acctBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize account %s from pogreb accountsdb: %w", base58.Encode(pubkey[:]), err)
	}
	return acct, nil
}

func (m *PogrebAccountsDb) SetAccount(pubkey *[32]byte, acct *Account) error {
	acctBytes, err := marshalAccount(acct)
	if err != nil {
		return fmt.Errorf("failed to serialize account for storage in pogreb accountsdb: %w", err)
	}

	err = m.db.Put(pubkey[:], acctBytes)
	if err != nil {
		return fmt.Errorf("error setting account for %s: %w", base58.Encode(pubkey[:]), err)
	}
	return nil
}

func (m *PogrebAccountsDb) Close() error {
	return m.db.Close()
}
