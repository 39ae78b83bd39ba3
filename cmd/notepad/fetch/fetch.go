package fetch

import (
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/config"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/noteclient"
	"github.com/Overclock-Validator/notepad/pkg/rpcclient"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "fetch",
		Short: "Fetch notes from a cluster over RPC",
		Run:   run,
	}

	authority string
	titles    []string
	endpoint  string
)

func init() {
	Cmd.Flags().StringVarP(&authority, "authority", "a", "", "Base58 public key of the notes' creator")
	Cmd.Flags().StringSliceVarP(&titles, "title", "t", nil, "Note titles (repeatable)")
	Cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "RPC endpoint, overrides the config")
}

func run(c *cobra.Command, args []string) {
	configPath, _ := c.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		klog.Exitf("%s", err)
	}
	if endpoint != "" {
		cfg.Rpc.Endpoint = endpoint
	}

	programId, err := cfg.ProgramPubkey()
	if err != nil {
		klog.Exitf("%s", err)
	}

	authorityKey, err := solana.PublicKeyFromBase58(authority)
	if err != nil {
		klog.Exitf("invalid authority %q: %s", authority, err)
	}

	if len(titles) == 0 {
		klog.Exitf("must specify at least one --title")
	}

	addrs := make([]solana.PublicKey, 0, len(titles))
	for _, title := range titles {
		noteAddr, _, err := notepad.FindNoteAddress(authorityKey, title, programId)
		if err != nil {
			klog.Exitf("cannot derive address for title %q: %s", title, err)
		}
		addrs = append(addrs, noteAddr)
	}

	klog.Infof("fetching %d notes from %s", len(addrs), cfg.Rpc.Endpoint)

	client := rpcclient.NewRpcClient(cfg.Rpc.Endpoint, cfg.Rpc.Timeout)
	accts, err := client.FetchAccounts(c.Context(), addrs)
	if err != nil {
		klog.Exitf("failed to fetch notes: %s", err)
	}

	for idx, acct := range accts {
		note, err := noteclient.DecodeNote(acct, programId)
		if err != nil {
			fmt.Printf("%s (%q): %s\n", addrs[idx], titles[idx], err)
			continue
		}
		fmt.Printf("%s: title=%q msg=%q owner=%s\n", addrs[idx], note.Title, note.Msg, note.Owner)
	}
}
