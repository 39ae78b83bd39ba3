package accounts

import (
	"errors"
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/base58"
	"github.com/lotusdblabs/lotusdb/v2"
)

// PersistentAccountsDb stores accounts in a lotusdb directory.
type PersistentAccountsDb struct {
	db *lotusdb.DB
}

func CreateNewAccountsDb(dirPath string) (*PersistentAccountsDb, error) {
	options := lotusdb.DefaultOptions
	options.DirPath = dirPath

	db, err := lotusdb.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening lotusdb accountsdb at %s: %w", dirPath, err)
	}

	return &PersistentAccountsDb{db: db}, nil
}

func (m *PersistentAccountsDb) GetAccount(pubkey *[32]byte) (*Account, error) {
	acctBytes, err := m.db.Get(pubkey[:])
	if errors.Is(err, lotusdb.ErrKeyNotFound) || (err == nil && len(acctBytes) == 0) {
		return emptyAccount(pubkey), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error whilst retrieving account %s: %w", base58.Encode(pubkey[:]), err)
	}

	acct, err := unmarshalAccount(pubkey, acctBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize account %s from lotusdb accountsdb: %w", base58.Encode(pubkey[:]), err)
	}

	return acct, nil
}

func (m *PersistentAccountsDb) SetAccount(pubkey *[32]byte, acct *Account) error {
	acctBytes, err := marshalAccount(acct)
	if err != nil {
		return fmt.Errorf("failed to serialize account for storage in lotusdb accountsdb: %w", err)
	}

	err = m.db.Put(pubkey[:], acctBytes)
	if err != nil {
		return fmt.Errorf("error setting account for %s: %w", base58.Encode(pubkey[:]), err)
	}

	return nil
}

func (m *PersistentAccountsDb) Close() error {
	return m.db.Close()
}
