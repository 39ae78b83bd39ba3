package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramId = solana.MustPublicKeyFromBase58("6zggdDfaFgYnkTiSUJk9kcpKshmaSCWQc1uDkptrWYyT")

func newTestLedger(t *testing.T, accts accounts.Accounts) *Ledger {
	t.Helper()
	l, err := New(accts, Options{Registerer: prometheus.NewRegistry()})
	require.NoError(t, err)
	l.RegisterProgram(testProgramId, notepad.Execute, notepad.ErrorCode)
	return l
}

func noteTx(t *testing.T, authority solana.PublicKey, instr notepad.Instruction, withSystemProgram bool) *Transaction {
	t.Helper()

	var title string
	switch instr := instr.(type) {
	case *notepad.CreateInstr:
		title = instr.Title
	case *notepad.ModifyInstr:
		title = instr.Title
	}
	noteAddr, _, err := notepad.FindNoteAddress(authority, title, testProgramId)
	require.NoError(t, err)

	data, err := notepad.MarshalInstruction(instr)
	require.NoError(t, err)

	metas := []sealevel.AccountMeta{
		{Pubkey: authority, IsSigner: true, IsWritable: true},
		{Pubkey: noteAddr, IsSigner: false, IsWritable: true},
	}
	if withSystemProgram {
		metas = append(metas, sealevel.AccountMeta{Pubkey: sealevel.SystemProgramAddr})
	}

	return &Transaction{
		Instruction: sealevel.Instruction{Accounts: metas, Data: data, ProgramId: testProgramId},
		Signers:     []solana.PublicKey{authority},
	}
}

func TestLedger_Create_And_Modify(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	ctx := context.Background()
	authority := solana.NewWallet().PublicKey()
	noteAddr, _, err := notepad.FindNoteAddress(authority, "title", testProgramId)
	require.NoError(t, err)

	result, err := l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "body", Owner: authority.String()}}, true))
	require.NoError(t, err)
	require.NoError(t, result.Err)
	assert.True(t, result.Succeeded())
	assert.Contains(t, result.ModifiedAccounts, noteAddr)
	assert.NotZero(t, result.ComputeUnitsConsumed)
	assert.Contains(t, result.Logs, "Program log: state account serialized")

	acct, err := l.GetAccountInfo(ctx, noteAddr)
	require.NoError(t, err)
	assert.Equal(t, testProgramId, acct.Owner)
	note, err := notepad.UnmarshalNoteAccount(acct.Data)
	require.NoError(t, err)
	assert.Equal(t, "body", note.Msg)

	result, err = l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.ModifyInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "changed", Owner: authority.String()}}, false))
	require.NoError(t, err)
	require.NoError(t, result.Err)

	acct, err = l.GetAccountInfo(ctx, noteAddr)
	require.NoError(t, err)
	note, err = notepad.UnmarshalNoteAccount(acct.Data)
	require.NoError(t, err)
	assert.Equal(t, "changed", note.Msg)

	assert.Equal(t, float64(2), testutil.ToFloat64(l.metrics.transactions.WithLabelValues("success")))
	assert.Equal(t, float64(0), testutil.ToFloat64(l.metrics.transactions.WithLabelValues("failed")))
}

func TestLedger_Failed_Transaction_Is_Discarded(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	ctx := context.Background()
	authority := solana.NewWallet().PublicKey()
	noteAddr, _, err := notepad.FindNoteAddress(authority, "title", testProgramId)
	require.NoError(t, err)

	result, err := l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "body", Owner: authority.String()}}, true))
	require.NoError(t, err)
	require.NoError(t, result.Err)

	before, err := l.GetAccountInfo(ctx, noteAddr)
	require.NoError(t, err)

	// grows past the account limit after the record has been decoded
	result, err = l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.ModifyInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: string(make([]byte, 1000)), Owner: authority.String()}}, false))
	require.NoError(t, err)
	assert.Equal(t, notepad.NotepadErrCapacityExceeded, result.Err)
	assert.Equal(t, uint32(notepad.NotepadErrCodeCapacityExceeded), result.CustomErrCode)
	assert.Equal(t, sealevel.InstrErrCodeCustom, result.InstrErrCode)
	assert.Empty(t, result.ModifiedAccounts)

	after, err := l.GetAccountInfo(ctx, noteAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, float64(1), testutil.ToFloat64(l.metrics.transactions.WithLabelValues("failed")))
}

func TestLedger_Create_Failure_Leaves_Slot_Absent(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	ctx := context.Background()
	authority := solana.NewWallet().PublicKey()
	noteAddr, _, err := notepad.FindNoteAddress(authority, "title", testProgramId)
	require.NoError(t, err)

	result, err := l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "body", Owner: "bad owner"}}, true))
	require.NoError(t, err)
	assert.Equal(t, notepad.NotepadErrSchemaMismatch, result.Err)

	acct, err := l.GetAccountInfo(ctx, noteAddr)
	require.NoError(t, err)
	assert.True(t, acct.IsEmpty())
}

func TestLedger_Missing_Signature(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	authority := solana.NewWallet().PublicKey()

	tx := noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "body", Owner: authority.String()}}, true)
	tx.Signers = nil

	_, err := l.ProcessTransaction(context.Background(), tx)
	assert.Equal(t, ErrMissingSignature, err)
}

func TestLedger_Unknown_Program(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	authority := solana.NewWallet().PublicKey()

	tx := noteTx(t, authority, &notepad.GreetingInstr{Counter: 1}, false)
	tx.Instruction.ProgramId = solana.NewWallet().PublicKey()

	_, err := l.ProcessTransaction(context.Background(), tx)
	assert.Equal(t, ErrUnknownProgram, err)
}

func TestLedger_Canceled_Context(t *testing.T) {
	l := newTestLedger(t, accounts.NewMemAccounts())
	authority := solana.NewWallet().PublicKey()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.ProcessTransaction(ctx, noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "body", Owner: authority.String()}}, true))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = l.GetAccountInfo(ctx, authority)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedger_Persistent_Store(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger")
	authority := solana.NewWallet().PublicKey()
	noteAddr, _, err := notepad.FindNoteAddress(authority, "title", testProgramId)
	require.NoError(t, err)

	db, err := accounts.OpenAccountsDb(accounts.BackendPebble, path)
	require.NoError(t, err)

	l := newTestLedger(t, db)
	result, err := l.ProcessTransaction(context.Background(), noteTx(t, authority, &notepad.CreateInstr{NoteArgs: notepad.NoteArgs{Title: "title", Msg: "persisted", Owner: authority.String()}}, true))
	require.NoError(t, err)
	require.NoError(t, result.Err)
	require.NoError(t, db.Close())

	db, err = accounts.OpenAccountsDb(accounts.BackendPebble, path)
	require.NoError(t, err)
	defer db.Close()

	l = newTestLedger(t, db)
	acct, err := l.GetAccountInfo(context.Background(), noteAddr)
	require.NoError(t, err)
	note, err := notepad.UnmarshalNoteAccount(acct.Data)
	require.NoError(t, err)
	assert.Equal(t, "persisted", note.Msg)
}

func TestLedger_Duplicate_Metrics_Registration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := New(accounts.NewMemAccounts(), Options{Registerer: registry})
	require.NoError(t, err)

	_, err = New(accounts.NewMemAccounts(), Options{Registerer: registry})
	assert.Error(t, err)
}
