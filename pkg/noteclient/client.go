package noteclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/ledger"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/sealevel"
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

var ErrNoteNotFound = errors.New("ErrNoteNotFound")

type Submitter interface {
	ProcessTransaction(ctx context.Context, tx *ledger.Transaction) (*ledger.TransactionResult, error)
}

type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*accounts.Account, error)
}

type Client struct {
	ProgramId solana.PublicKey
	submitter Submitter
	fetcher   AccountFetcher
}

// New returns a client for the notepad program at programId. submitter may be
// nil for a read-only client.
func New(programId solana.PublicKey, submitter Submitter, fetcher AccountFetcher) *Client {
	return &Client{ProgramId: programId, submitter: submitter, fetcher: fetcher}
}

func (c *Client) submit(ctx context.Context, instr *sealevel.Instruction, signer solana.PublicKey) (*ledger.TransactionResult, error) {
	if c.submitter == nil {
		return nil, errors.New("client has no transaction submitter")
	}

	result, err := c.submitter.ProcessTransaction(ctx, &ledger.Transaction{Instruction: *instr, Signers: []solana.PublicKey{signer}})
	if err != nil {
		return nil, err
	}
	if result.Err != nil {
		return result, fmt.Errorf("transaction failed: %w", result.Err)
	}
	return result, nil
}

func (c *Client) CreateNote(ctx context.Context, authority solana.PublicKey, title string, msg string, owner solana.PublicKey) (*ledger.TransactionResult, error) {
	instr, err := NewCreateInstruction(c.ProgramId, authority, title, msg, owner)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("creating note %q for %s", title, authority)
	return c.submit(ctx, instr, authority)
}

func (c *Client) ModifyNote(ctx context.Context, authority solana.PublicKey, title string, msg string, owner solana.PublicKey) (*ledger.TransactionResult, error) {
	instr, err := NewModifyInstruction(c.ProgramId, authority, title, msg, owner)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("modifying note %q for %s", title, authority)
	return c.submit(ctx, instr, authority)
}

// GetNote fetches and decodes the note authority created under title.
func (c *Client) GetNote(ctx context.Context, authority solana.PublicKey, title string) (solana.PublicKey, *notepad.NoteAccount, error) {
	noteAddr, _, err := notepad.FindNoteAddress(authority, title, c.ProgramId)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	acct, err := c.fetcher.GetAccountInfo(ctx, noteAddr)
	if err != nil {
		return noteAddr, nil, err
	}

	note, err := DecodeNote(acct, c.ProgramId)
	return noteAddr, note, err
}

// DecodeNote decodes acct as a note owned by programId. Trailing zero padding
// left by fixed-size slots is tolerated.
func DecodeNote(acct *accounts.Account, programId solana.PublicKey) (*notepad.NoteAccount, error) {
	if acct == nil || acct.Owner != programId || len(acct.Data) == 0 {
		return nil, ErrNoteNotFound
	}
	return notepad.UnmarshalNoteAccountUnchecked(acct.Data)
}
