package rpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

const maxConcurrentRequests = 8

type RpcClient struct {
	client  *rpc.Client
	timeout time.Duration
}

// NewRpcClient returns a client for endpoint. A zero timeout leaves request
// deadlines to the caller's context.
func NewRpcClient(endpoint string, timeout time.Duration) *RpcClient {
	client := rpc.New(endpoint)
	return &RpcClient{client: client, timeout: timeout}
}

// GetAccountInfo fetches pubkey at confirmed commitment. An account that does
// not exist on the cluster is returned as an empty system-owned account.
// RentEpoch is not carried over.
func (fetcher *RpcClient) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*accounts.Account, error) {
	if fetcher.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, fetcher.timeout)
		defer cancel()
	}

	result, err := fetcher.client.GetAccountInfoWithOpts(
		ctx,
		pubkey,
		&rpc.GetAccountInfoOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: rpc.CommitmentConfirmed,
		},
	)
	if errors.Is(err, rpc.ErrNotFound) {
		klog.V(2).Infof("account %s not found", pubkey)
		return &accounts.Account{Key: pubkey, Owner: solana.SystemProgramID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo %s: %w", pubkey, err)
	}
	if result == nil || result.Value == nil {
		return &accounts.Account{Key: pubkey, Owner: solana.SystemProgramID}, nil
	}

	value := result.Value
	acct := &accounts.Account{
		Key:        pubkey,
		Lamports:   value.Lamports,
		Owner:      value.Owner,
		Executable: value.Executable,
	}
	if value.Data != nil {
		acct.Data = value.Data.GetBinary()
	}

	return acct, nil
}

// FetchAccounts fetches pubkeys concurrently. The result is in the same order
// as pubkeys; the first failure cancels the outstanding requests.
func (fetcher *RpcClient) FetchAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*accounts.Account, error) {
	accts := make([]*accounts.Account, len(pubkeys))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentRequests)

	for idx, pubkey := range pubkeys {
		idx, pubkey := idx, pubkey
		group.Go(func() error {
			acct, err := fetcher.GetAccountInfo(ctx, pubkey)
			if err != nil {
				return err
			}
			accts[idx] = acct
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return accts, nil
}
