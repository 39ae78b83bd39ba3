package accounts

import (
	"errors"
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/base58"
	"github.com/cockroachdb/pebble"
)

// PebbleAccountsDb stores accounts in a pebble LSM directory.
type PebbleAccountsDb struct {
	db *pebble.DB
}

func OpenPebbleAccountsDb(dirPath string) (*PebbleAccountsDb, error) {
	db, err := pebble.Open(dirPath, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening pebble accountsdb at %s: %w", dirPath, err)
	}
	return &PebbleAccountsDb{db: db}, nil
}

func (m *PebbleAccountsDb) GetAccount(pubkey *[32]byte) (*Account, error) {
	acctBytes, closer, err := m.db.Get(pubkey[:])
	if errors.Is(err, pebble.ErrNotFound) {
		return emptyAccount(pubkey), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error whilst retrieving account %s: %w", base58.Encode(pubkey[:]), err)
	}
	defer closer.Close()

	// acctBytes is only valid until closer is closed.
	acct, err := unmarshalAccount(pubkey, acctBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize account %s from pebble accountsdb: %w", base58.Encode(pubkey[:]), err)
	}
	return acct.Clone(), nil
}

func (m *PebbleAccountsDb) SetAccount(pubkey *[32]byte, acct *Account) error {
	acctBytes, err := marshalAccount(acct)
	if err != nil {
		return fmt.Errorf("failed to serialize account for storage in pebble accountsdb: %w", err)
	}

	err = m.db.Set(pubkey[:], acctBytes, pebble.Sync)
	if err != nil {
		return fmt.Errorf("error setting account for %s: %w", base58.Encode(pubkey[:]), err)
	}
	return nil
}

func (m *PebbleAccountsDb) Close() error {
	return m.db.Close()
}
