package util

import (
	"testing"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestCalculateAcctHash(t *testing.T) {
	acct := accounts.Account{Key: solana.NewWallet().PublicKey(), Lamports: 5, Data: []byte("note"), Owner: solana.SystemProgramID}

	h1 := CalculateAcctHash(acct)
	assert.Len(t, h1, 32)
	assert.Equal(t, h1, CalculateAcctHash(acct))

	modified := acct
	modified.Data = []byte("notf")
	assert.NotEqual(t, h1, CalculateAcctHash(modified))

	modified = acct
	modified.Key = solana.NewWallet().PublicKey()
	assert.NotEqual(t, h1, CalculateAcctHash(modified))
}

func TestPrettyPrintAcct(t *testing.T) {
	acct := &accounts.Account{Key: solana.SystemProgramID, Owner: solana.SystemProgramID, Data: []byte{1, 2, 3}}
	out := PrettyPrintAcct(acct)
	assert.Contains(t, out, "data len: 3")
	assert.Contains(t, out, "owner: 11111111111111111111111111111111")
}
