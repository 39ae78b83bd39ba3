package sealevel

import (
	"testing"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCtx_PushPop(t *testing.T) {
	programId := solana.NewWallet().PublicKey()
	transactionAccts := NewTransactionAccounts([]accounts.Account{NewProgramAccount(programId)})
	txCtx := NewTestTransactionCtx(*transactionAccts, 2, 3)

	_, err := txCtx.CurrentInstructionCtx()
	assert.Equal(t, InstrErrCallDepth, err)

	for i := 0; i < 2; i++ {
		next, err := txCtx.NextInstructionCtx()
		require.NoError(t, err)
		next.Configure([]uint64{0}, nil, []byte{byte(i)})
		require.NoError(t, txCtx.Push())
	}
	assert.Equal(t, uint64(2), txCtx.InstructionCtxStackHeight())

	current, err := txCtx.CurrentInstructionCtx()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, current.Data)
	assert.Equal(t, uint64(1), current.NestingLevel)

	key, err := current.LastProgramKey(txCtx)
	require.NoError(t, err)
	assert.Equal(t, programId, key)

	assert.Equal(t, InstrErrCallDepth, txCtx.Push())

	require.NoError(t, txCtx.Pop())
	require.NoError(t, txCtx.Pop())
	assert.Equal(t, InstrErrCallDepth, txCtx.Pop())

	next, err := txCtx.NextInstructionCtx()
	require.NoError(t, err)
	next.Configure([]uint64{0}, nil, nil)
	require.NoError(t, txCtx.Push())
	require.NoError(t, txCtx.Pop())

	assert.Equal(t, InstrErrMaxInstructionTraceLength, txCtx.Push())
}

func TestTransactionAccounts_Isolation(t *testing.T) {
	acct := accounts.Account{Key: solana.NewWallet().PublicKey(), Data: []byte{1, 2, 3}}
	transactionAccts := NewTransactionAccounts([]accounts.Account{acct})

	txAcct, err := transactionAccts.GetAccount(0)
	require.NoError(t, err)
	txAcct.Data[0] = 9
	assert.Equal(t, byte(1), acct.Data[0])

	_, err = transactionAccts.GetAccount(1)
	assert.Equal(t, InstrErrNotEnoughAccountKeys, err)
}

func TestInstructionAcctsFromAccountMetas_Duplicates(t *testing.T) {
	a := accounts.Account{Key: solana.NewWallet().PublicKey()}
	b := accounts.Account{Key: solana.NewWallet().PublicKey()}
	transactionAccts := NewTransactionAccounts([]accounts.Account{a, b})

	instrAccts, err := InstructionAcctsFromAccountMetas([]AccountMeta{
		{Pubkey: a.Key, IsSigner: true},
		{Pubkey: b.Key},
		{Pubkey: a.Key, IsWritable: true},
	}, *transactionAccts)
	require.NoError(t, err)
	require.Len(t, instrAccts, 3)
	assert.Equal(t, uint64(0), instrAccts[2].IndexInTransaction)
	assert.Equal(t, uint64(0), instrAccts[2].IndexInCallee)
	assert.Equal(t, uint64(1), instrAccts[1].IndexInCallee)

	_, err = InstructionAcctsFromAccountMetas([]AccountMeta{{Pubkey: solana.NewWallet().PublicKey()}}, *transactionAccts)
	assert.Equal(t, InstrErrMissingAccount, err)
}
