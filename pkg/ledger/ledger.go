package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/cu"
	"github.com/Overclock-Validator/notepad/pkg/features"
	"github.com/Overclock-Validator/notepad/pkg/sealevel"
	"github.com/Overclock-Validator/notepad/pkg/util"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

var (
	ErrMissingSignature = errors.New("ErrMissingSignature")
	ErrUnknownProgram   = errors.New("ErrUnknownProgram")
)

// ErrorCoder maps a program error to its custom error code.
type ErrorCoder func(err error) (uint32, bool)

type Transaction struct {
	Instruction sealevel.Instruction
	// Signers holds the identities whose signatures were verified by the
	// submitter.
	Signers []solana.PublicKey
}

type TransactionResult struct {
	Logs                 []string
	ComputeUnitsConsumed uint64
	Err                  error
	InstrErrCode         int
	CustomErrCode        uint32
	ModifiedAccounts     []solana.PublicKey
}

func (result *TransactionResult) Succeeded() bool {
	return result.Err == nil
}

type Options struct {
	ComputeUnitLimit uint64
	Features         *features.Features
	Registerer       prometheus.Registerer
}

type Ledger struct {
	mu        sync.Mutex
	accts     accounts.Accounts
	opts      Options
	programs  sealevel.NativePrograms
	errCoders map[solana.PublicKey]ErrorCoder
	metrics   *metrics
}

func New(accts accounts.Accounts, opts Options) (*Ledger, error) {
	if opts.ComputeUnitLimit == 0 {
		opts.ComputeUnitLimit = cu.DefaultComputeUnitLimit
	}
	if opts.Features == nil {
		opts.Features = features.NewFeaturesDefault()
	}

	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return nil, fmt.Errorf("registering ledger metrics: %w", err)
	}

	return &Ledger{
		accts:     accts,
		opts:      opts,
		programs:  make(sealevel.NativePrograms),
		errCoders: make(map[solana.PublicKey]ErrorCoder),
		metrics:   m,
	}, nil
}

// RegisterProgram makes a native program invokable at programId. coder may be
// nil.
func (l *Ledger) RegisterProgram(programId solana.PublicKey, fn sealevel.NativeProgramFn, coder ErrorCoder) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.programs.Register(programId, fn)
	if coder != nil {
		l.errCoders[programId] = coder
	}
}

func (l *Ledger) isNativeProgram(key solana.PublicKey) bool {
	if key == sealevel.SystemProgramAddr {
		return true
	}
	_, ok := l.programs[key]
	return ok
}

func (l *Ledger) loadAccount(key solana.PublicKey) (accounts.Account, error) {
	if l.isNativeProgram(key) {
		return sealevel.NewProgramAccount(key), nil
	}

	k := [32]byte(key)
	acct, err := l.accts.GetAccount(&k)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("loading account %s: %w", key, err)
	}
	return *acct, nil
}

func verifySignatures(instr *sealevel.Instruction, signers []solana.PublicKey) error {
	for _, acctMeta := range instr.Accounts {
		if !acctMeta.IsSigner {
			continue
		}
		found := false
		for _, signer := range signers {
			if signer == acctMeta.Pubkey {
				found = true
				break
			}
		}
		if !found {
			klog.Errorf("missing signature for %s", acctMeta.Pubkey)
			return ErrMissingSignature
		}
	}
	return nil
}

// ProcessTransaction executes the transaction's instruction. Account changes
// are written to the store only if the instruction succeeds. The returned
// error reports transaction-level failures; instruction failures are reported
// in TransactionResult.Err.
func (l *Ledger) ProcessTransaction(ctx context.Context, tx *Transaction) (*TransactionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	instr := &tx.Instruction
	err := verifySignatures(instr, tx.Signers)
	if err != nil {
		return nil, err
	}

	if !l.isNativeProgram(instr.ProgramId) {
		klog.Errorf("transaction invokes unknown program %s", instr.ProgramId)
		return nil, ErrUnknownProgram
	}

	keys := instr.Keys()
	accts := make([]accounts.Account, 0, len(keys))
	programIdx := uint64(0)
	for idx, key := range keys {
		acct, err := l.loadAccount(key)
		if err != nil {
			return nil, err
		}
		if key == instr.ProgramId {
			programIdx = uint64(idx)
		}
		accts = append(accts, acct)
	}

	txAccts := sealevel.NewTransactionAccounts(accts)
	instrAccts, err := sealevel.InstructionAcctsFromAccountMetas(instr.Accounts, *txAccts)
	if err != nil {
		return nil, err
	}

	log := &sealevel.LogRecorder{}
	execCtx := &sealevel.ExecutionCtx{
		Log:                log,
		TransactionContext: sealevel.NewTransactionCtx(*txAccts, sealevel.DefaultInstructionStackCapacity, sealevel.DefaultInstructionTraceCapacity),
		ComputeMeter:       cu.NewComputeMeter(l.opts.ComputeUnitLimit),
		Features:           *l.opts.Features,
		NativePrograms:     l.programs,
	}

	instrErr := execCtx.ProcessInstruction(instr.Data, instrAccts, []uint64{programIdx})

	result := &TransactionResult{
		Logs:                 log.Logs,
		ComputeUnitsConsumed: execCtx.ComputeMeter.Used(),
		Err:                  instrErr,
	}
	l.metrics.recordTransaction(instrErr, result.ComputeUnitsConsumed)

	if instrErr != nil {
		result.InstrErrCode = sealevel.TranslateErrToInstrErrCode(instrErr)
		if coder, ok := l.errCoders[instr.ProgramId]; ok {
			result.CustomErrCode, _ = coder(instrErr)
		}
		klog.Infof("transaction for program %s failed: %s", instr.ProgramId, instrErr)
		return result, nil
	}

	modified, err := l.commit(execCtx.TransactionContext)
	if err != nil {
		return nil, err
	}
	result.ModifiedAccounts = modified

	return result, nil
}

func (l *Ledger) commit(txCtx *sealevel.TransactionCtx) ([]solana.PublicKey, error) {
	var modified []solana.PublicKey

	for idx, touched := range txCtx.Accounts.Touched {
		if !touched {
			continue
		}
		acct, err := txCtx.Accounts.GetAccount(uint64(idx))
		if err != nil {
			return nil, err
		}
		if l.isNativeProgram(acct.Key) {
			continue
		}

		k := [32]byte(acct.Key)
		err = l.accts.SetAccount(&k, acct)
		if err != nil {
			return nil, fmt.Errorf("committing account %s: %w", acct.Key, err)
		}
		l.metrics.accountsCommitted.Inc()

		klog.Infof("committed account %s (owner %s, %d bytes, hash %s)", acct.Key, acct.Owner, len(acct.Data), hex.EncodeToString(util.CalculateAcctHash(*acct)))
		modified = append(modified, acct.Key)
	}

	return modified, nil
}

func (l *Ledger) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*accounts.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	k := [32]byte(pubkey)
	acct, err := l.accts.GetAccount(&k)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", pubkey, err)
	}
	return acct, nil
}
