package rpcclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type fakeAccount struct {
	owner solana.PublicKey
	data  []byte
}

// newFakeCluster serves getAccountInfo for accts and fails for keys in broken.
func newFakeCluster(t *testing.T, accts map[solana.PublicKey]fakeAccount, broken map[solana.PublicKey]bool) *httptest.Server {
	var mu sync.Mutex

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")

		var pubkeyStr string
		if req.Method != "getAccountInfo" || len(req.Params) == 0 || json.Unmarshal(req.Params[0], &pubkeyStr) != nil {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
			return
		}
		pubkey := solana.MustPublicKeyFromBase58(pubkeyStr)

		mu.Lock()
		acct, ok := accts[pubkey]
		isBroken := broken[pubkey]
		mu.Unlock()

		switch {
		case isBroken:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32000,"message":"node is unhealthy"}}`, req.ID)
		case !ok:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":10},"value":null}}`, req.ID)
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"context":{"slot":10},"value":{"lamports":42,"owner":%q,"data":[%q,"base64"],"executable":false,"rentEpoch":0,"space":%d}}}`,
				req.ID, acct.owner.String(), base64.StdEncoding.EncodeToString(acct.data), len(acct.data))
		}
	}))
}

func TestGetAccountInfo(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	srv := newFakeCluster(t, map[solana.PublicKey]fakeAccount{key: {owner: owner, data: []byte("note bytes")}}, nil)
	defer srv.Close()

	client := NewRpcClient(srv.URL, 0)
	acct, err := client.GetAccountInfo(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, key, acct.Key)
	assert.Equal(t, owner, acct.Owner)
	assert.Equal(t, uint64(42), acct.Lamports)
	assert.Equal(t, []byte("note bytes"), acct.Data)
}

func TestGetAccountInfo_Missing(t *testing.T) {
	srv := newFakeCluster(t, nil, nil)
	defer srv.Close()

	key := solana.NewWallet().PublicKey()
	acct, err := NewRpcClient(srv.URL, 0).GetAccountInfo(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, acct.IsEmpty())
	assert.Equal(t, key, acct.Key)
}

func TestFetchAccounts(t *testing.T) {
	accts := make(map[solana.PublicKey]fakeAccount)
	var keys []solana.PublicKey
	for i := 0; i < 20; i++ {
		key := solana.NewWallet().PublicKey()
		keys = append(keys, key)
		if i%2 == 0 {
			accts[key] = fakeAccount{owner: solana.SystemProgramID, data: []byte{byte(i)}}
		}
	}
	srv := newFakeCluster(t, accts, nil)
	defer srv.Close()

	fetched, err := NewRpcClient(srv.URL, 0).FetchAccounts(context.Background(), keys)
	require.NoError(t, err)
	require.Len(t, fetched, len(keys))
	for i, acct := range fetched {
		assert.Equal(t, keys[i], acct.Key)
		if i%2 == 0 {
			assert.Equal(t, []byte{byte(i)}, acct.Data)
		} else {
			assert.Empty(t, acct.Data)
		}
	}
}

func TestFetchAccounts_Error(t *testing.T) {
	good := solana.NewWallet().PublicKey()
	bad := solana.NewWallet().PublicKey()
	srv := newFakeCluster(t, map[solana.PublicKey]fakeAccount{good: {owner: solana.SystemProgramID}}, map[solana.PublicKey]bool{bad: true})
	defer srv.Close()

	_, err := NewRpcClient(srv.URL, 0).FetchAccounts(context.Background(), []solana.PublicKey{good, bad})
	assert.Error(t, err)
}
