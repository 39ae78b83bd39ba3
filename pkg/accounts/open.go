package accounts

import (
	"fmt"

	"k8s.io/klog/v2"
)

const (
	BackendMemory  = "memory"
	BackendLotusDb = "lotusdb"
	BackendPebble  = "pebble"
	BackendPogreb  = "pogreb"
)

// OpenAccountsDb opens the account store for the named backend. path is ignored
// by the memory backend.
func OpenAccountsDb(backend string, path string) (AccountsDb, error) {
	klog.V(2).Infof("opening %s accountsdb at %q", backend, path)

	var db AccountsDb
	var err error

	switch backend {
	case BackendMemory, "":
		db = NewMemAccounts()
	case BackendLotusDb:
		db, err = CreateNewAccountsDb(path)
	case BackendPebble:
		db, err = OpenPebbleAccountsDb(path)
	case BackendPogreb:
		db, err = OpenPogrebAccountsDb(path)
	default:
		err = fmt.Errorf("unknown accountsdb backend %q", backend)
	}

	if err != nil {
		return nil, err
	}
	return db, nil
}
