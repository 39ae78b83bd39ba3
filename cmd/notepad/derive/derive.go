package derive

import (
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/config"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "derive",
		Short: "Derive the address of a note",
		Run:   run,
	}

	authority string
	title     string
)

func init() {
	Cmd.Flags().StringVarP(&authority, "authority", "a", "", "Base58 public key of the note's creator")
	Cmd.Flags().StringVarP(&title, "title", "t", "", "Note title")
}

func run(c *cobra.Command, args []string) {
	configPath, _ := c.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		klog.Exitf("%s", err)
	}

	programId, err := cfg.ProgramPubkey()
	if err != nil {
		klog.Exitf("%s", err)
	}

	authorityKey, err := solana.PublicKeyFromBase58(authority)
	if err != nil {
		klog.Exitf("invalid authority %q: %s", authority, err)
	}

	noteAddr, bump, err := notepad.FindNoteAddress(authorityKey, title, programId)
	if err != nil {
		klog.Exitf("cannot derive address for title %q: %s", title, err)
	}

	fmt.Printf("address: %s\nbump: %d\n", noteAddr, bump)
}
