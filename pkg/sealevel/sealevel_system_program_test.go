package sealevel

import (
	"testing"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	pda "github.com/Overclock-Validator/notepad/pkg/solana"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Tx_System_Program_CreateAccount_Success(t *testing.T) {
	fromAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Lamports: 1000, Owner: SystemProgramAddr, RentEpoch: 100}
	toAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Owner: SystemProgramAddr, RentEpoch: 100}
	owner := solana.NewWallet().PublicKey()

	transactionAccts := NewTransactionAccounts([]accounts.Account{fromAcct, toAcct, NewProgramAccount(SystemProgramAddr)})

	instr := NewCreateAccountInstruction(fromAcct.Key, toAcct.Key, 100, 64, owner)
	instructionAccts, err := InstructionAcctsFromAccountMetas(instr.Accounts, *transactionAccts)
	require.NoError(t, err)

	var log LogRecorder
	execCtx := NewTestExecutionCtx(*transactionAccts, &log, nil)
	err = execCtx.ProcessInstruction(instr.Data, instructionAccts, []uint64{2})
	require.NoError(t, err)

	txCtx := execCtx.TransactionContext
	from, err := txCtx.Accounts.GetAccount(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), from.Lamports)

	to, err := txCtx.Accounts.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), to.Lamports)
	assert.Equal(t, make([]byte, 64), to.Data)
	assert.Equal(t, owner, to.Owner)

	assert.Equal(t, []bool{true, true, false}, txCtx.Accounts.Touched)
	assert.Equal(t, []string{
		"Program 11111111111111111111111111111111 invoke [1]",
		"Program 11111111111111111111111111111111 consumed 150 of 200000 compute units",
		"Program 11111111111111111111111111111111 success",
	}, log.Logs)
}

func TestExecute_Tx_System_Program_CreateAccount_Unsigned_Failure(t *testing.T) {
	fromAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Lamports: 1000, Owner: SystemProgramAddr}
	toAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Owner: SystemProgramAddr}

	transactionAccts := NewTransactionAccounts([]accounts.Account{fromAcct, toAcct, NewProgramAccount(SystemProgramAddr)})

	instr := NewCreateAccountInstruction(fromAcct.Key, toAcct.Key, 0, 64, solana.NewWallet().PublicKey())
	instr.Accounts[1].IsSigner = false
	instructionAccts, err := InstructionAcctsFromAccountMetas(instr.Accounts, *transactionAccts)
	require.NoError(t, err)

	execCtx := NewTestExecutionCtx(*transactionAccts, nil, nil)
	err = execCtx.ProcessInstruction(instr.Data, instructionAccts, []uint64{2})
	assert.Equal(t, InstrErrMissingRequiredSignature, err)
}

func TestExecute_Tx_System_Program_CreateAccount_AlreadyInUse_Failure(t *testing.T) {
	fromAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Lamports: 1000, Owner: SystemProgramAddr}
	toAcct := accounts.Account{Key: solana.NewWallet().PublicKey(), Data: []byte{1}, Owner: SystemProgramAddr}

	transactionAccts := NewTransactionAccounts([]accounts.Account{fromAcct, toAcct, NewProgramAccount(SystemProgramAddr)})

	instr := NewCreateAccountInstruction(fromAcct.Key, toAcct.Key, 0, 64, solana.NewWallet().PublicKey())
	instructionAccts, err := InstructionAcctsFromAccountMetas(instr.Accounts, *transactionAccts)
	require.NoError(t, err)

	execCtx := NewTestExecutionCtx(*transactionAccts, nil, nil)
	err = execCtx.ProcessInstruction(instr.Data, instructionAccts, []uint64{2})
	assert.Equal(t, SystemProgErrAccountAlreadyInUse, err)
}

func TestExecute_Tx_System_Program_InvalidInstruction_Failure(t *testing.T) {
	acct := accounts.Account{Key: solana.NewWallet().PublicKey(), Owner: SystemProgramAddr}
	transactionAccts := NewTransactionAccounts([]accounts.Account{acct, NewProgramAccount(SystemProgramAddr)})

	instructionAccts, err := InstructionAcctsFromAccountMetas([]AccountMeta{{Pubkey: acct.Key, IsSigner: true, IsWritable: true}}, *transactionAccts)
	require.NoError(t, err)

	execCtx := NewTestExecutionCtx(*transactionAccts, nil, nil)
	err = execCtx.ProcessInstruction([]byte{0xff, 0, 0, 0}, instructionAccts, []uint64{1})
	assert.Equal(t, InstrErrInvalidInstructionData, err)
}

// vaultProgram creates the account at instruction account 1 as a PDA derived
// from ["vault"] via a signed invocation of the system program.
func vaultProgram(signed bool) NativeProgramFn {
	return func(execCtx *ExecutionCtx) error {
		txCtx := execCtx.TransactionContext
		instrCtx, err := txCtx.CurrentInstructionCtx()
		if err != nil {
			return err
		}
		programId, err := instrCtx.LastProgramKey(txCtx)
		if err != nil {
			return err
		}
		payer, err := instrCtx.BorrowInstructionAccount(txCtx, 0)
		if err != nil {
			return err
		}

		addr, bump, err := pda.FindProgramAddress([][]byte{[]byte("vault")}, programId)
		if err != nil {
			return err
		}
		vault := solana.PublicKey(addr)

		execCtx.ProgramLog("vault %s", vault)

		instr := NewCreateAccountInstruction(payer.Key(), vault, 0, 8, programId)
		if !signed {
			return execCtx.NativeInvoke(*instr, nil)
		}
		return execCtx.NativeInvokeSigned(*instr, [][][]byte{{[]byte("vault"), {bump}}})
	}
}

func setupVaultTx(t *testing.T, signed bool) (*ExecutionCtx, []InstructionAccount, solana.PublicKey, *LogRecorder) {
	t.Helper()

	programId := solana.NewWallet().PublicKey()
	addr, _, err := pda.FindProgramAddress([][]byte{[]byte("vault")}, programId)
	require.NoError(t, err)
	vault := solana.PublicKey(addr)

	payer := accounts.Account{Key: solana.NewWallet().PublicKey(), Owner: SystemProgramAddr}
	vaultAcct := accounts.Account{Key: vault, Owner: SystemProgramAddr}

	transactionAccts := NewTransactionAccounts([]accounts.Account{payer, vaultAcct, NewProgramAccount(SystemProgramAddr), NewProgramAccount(programId)})

	acctMetas := []AccountMeta{
		{Pubkey: payer.Key, IsSigner: true, IsWritable: true},
		{Pubkey: vault, IsSigner: false, IsWritable: true},
		{Pubkey: SystemProgramAddr, IsSigner: false, IsWritable: false},
	}
	instructionAccts, err := InstructionAcctsFromAccountMetas(acctMetas, *transactionAccts)
	require.NoError(t, err)

	programs := make(NativePrograms)
	programs.Register(programId, vaultProgram(signed))

	log := new(LogRecorder)
	execCtx := NewTestExecutionCtx(*transactionAccts, log, programs)
	return execCtx, instructionAccts, programId, log
}

func TestExecute_Tx_NativeInvokeSigned_Success(t *testing.T) {
	execCtx, instructionAccts, programId, log := setupVaultTx(t, true)

	err := execCtx.ProcessInstruction(nil, instructionAccts, []uint64{3})
	require.NoError(t, err)

	vault, err := execCtx.TransactionContext.Accounts.GetAccount(1)
	require.NoError(t, err)
	assert.Equal(t, programId, vault.Owner)
	assert.Equal(t, make([]byte, 8), vault.Data)

	assert.Contains(t, log.Logs, "Program 11111111111111111111111111111111 invoke [2]")
	assert.Equal(t, "Program "+programId.String()+" success", log.Logs[len(log.Logs)-1])
}

func TestExecute_Tx_NativeInvoke_Unsigned_Failure(t *testing.T) {
	execCtx, instructionAccts, _, _ := setupVaultTx(t, false)

	err := execCtx.ProcessInstruction(nil, instructionAccts, []uint64{3})
	assert.Equal(t, InstrErrPrivilegeEscalation, err)
}

func TestExecute_Tx_UnknownProgram_Failure(t *testing.T) {
	programId := solana.NewWallet().PublicKey()
	transactionAccts := NewTransactionAccounts([]accounts.Account{NewProgramAccount(programId)})

	execCtx := NewTestExecutionCtx(*transactionAccts, nil, nil)
	err := execCtx.ProcessInstruction(nil, nil, []uint64{0})
	assert.Equal(t, InstrErrUnsupportedProgramId, err)
	assert.Equal(t, uint64(0), execCtx.StackHeight())
}
