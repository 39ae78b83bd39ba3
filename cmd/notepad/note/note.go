package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/Overclock-Validator/notepad/pkg/accounts"
	"github.com/Overclock-Validator/notepad/pkg/config"
	"github.com/Overclock-Validator/notepad/pkg/ledger"
	"github.com/Overclock-Validator/notepad/pkg/notepad"
	"github.com/Overclock-Validator/notepad/pkg/noteclient"
	"github.com/Overclock-Validator/notepad/pkg/util"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var (
	CreateCmd = cobra.Command{
		Use:   "create",
		Short: "Create a note in the local ledger",
		Run:   runCreate,
	}

	ModifyCmd = cobra.Command{
		Use:   "modify",
		Short: "Modify a note in the local ledger",
		Run:   runModify,
	}

	ShowCmd = cobra.Command{
		Use:   "show",
		Short: "Show a note stored in the local ledger",
		Run:   runShow,
	}

	authority    string
	title        string
	msg          string
	owner        string
	storeBackend string
	storePath    string
)

func init() {
	for _, c := range []*cobra.Command{&CreateCmd, &ModifyCmd, &ShowCmd} {
		c.Flags().StringVarP(&authority, "authority", "a", "", "Base58 public key of the signing authority")
		c.Flags().StringVarP(&title, "title", "t", "", "Note title")
		c.Flags().StringVar(&storeBackend, "store-backend", "", "Account store backend, overrides the config")
		c.Flags().StringVar(&storePath, "store-path", "", "Account store path, overrides the config")
	}
	for _, c := range []*cobra.Command{&CreateCmd, &ModifyCmd} {
		c.Flags().StringVarP(&msg, "msg", "m", "", "Note body")
		c.Flags().StringVarP(&owner, "owner", "o", "", "Base58 public key of the note's owner (default: the authority)")
	}
}

type session struct {
	db     accounts.AccountsDb
	ledger *ledger.Ledger
	client *noteclient.Client
}

func openSession(c *cobra.Command) *session {
	configPath, _ := c.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		klog.Exitf("%s", err)
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if err = cfg.Validate(); err != nil {
		klog.Exitf("%s", err)
	}

	programId, err := cfg.ProgramPubkey()
	if err != nil {
		klog.Exitf("%s", err)
	}
	program, err := cfg.NotepadProgram()
	if err != nil {
		klog.Exitf("%s", err)
	}

	if cfg.Store.Backend == accounts.BackendMemory || cfg.Store.Backend == "" {
		klog.Warningf("using the memory account store, notes will not outlive this command")
	}

	db, err := accounts.OpenAccountsDb(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		klog.Exitf("unable to open %s account store at %s: %s", cfg.Store.Backend, cfg.Store.Path, err)
	}

	l, err := ledger.New(db, ledger.Options{ComputeUnitLimit: cfg.ComputeUnitLimit, Features: cfg.FeatureSet()})
	if err != nil {
		klog.Exitf("%s", err)
	}
	l.RegisterProgram(programId, program.Execute, notepad.ErrorCode)

	for _, enabled := range cfg.FeatureSet().AllEnabled() {
		klog.Infof("%s", enabled)
	}

	return &session{db: db, ledger: l, client: noteclient.New(programId, l, l)}
}

func (s *session) close() {
	if err := s.db.Close(); err != nil {
		klog.Errorf("closing account store: %s", err)
	}
}

func mustParseKey(name string, value string) solana.PublicKey {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		klog.Exitf("invalid %s %q: %s", name, value, err)
	}
	return key
}

func printResult(result *ledger.TransactionResult, err error) {
	if result == nil {
		klog.Exitf("transaction not processed: %s", err)
	}

	for _, line := range result.Logs {
		fmt.Println(line)
	}
	fmt.Printf("compute units consumed: %d\n", result.ComputeUnitsConsumed)

	if err != nil {
		fmt.Printf("error: %s (custom code 0x%x)\n", result.Err, result.CustomErrCode)
		return
	}
	for _, modified := range result.ModifiedAccounts {
		fmt.Printf("modified: %s\n", modified)
	}
}

func runCreate(c *cobra.Command, args []string) {
	runNoteTx(c, (*noteclient.Client).CreateNote)
}

func runModify(c *cobra.Command, args []string) {
	runNoteTx(c, (*noteclient.Client).ModifyNote)
}

type noteTxFn func(client *noteclient.Client, ctx context.Context, authority solana.PublicKey, title string, msg string, owner solana.PublicKey) (*ledger.TransactionResult, error)

func runNoteTx(c *cobra.Command, fn noteTxFn) {
	authorityKey := mustParseKey("authority", authority)
	ownerKey := authorityKey
	if owner != "" {
		ownerKey = mustParseKey("owner", owner)
	}

	s := openSession(c)
	defer s.close()

	result, err := fn(s.client, c.Context(), authorityKey, title, msg, ownerKey)
	printResult(result, err)
}

func runShow(c *cobra.Command, args []string) {
	authorityKey := mustParseKey("authority", authority)

	s := openSession(c)
	defer s.close()

	noteAddr, note, err := s.client.GetNote(c.Context(), authorityKey, title)
	if errors.Is(err, noteclient.ErrNoteNotFound) {
		fmt.Printf("no note titled %q at %s\n", title, noteAddr)
		return
	}
	if err != nil {
		klog.Exitf("%s", err)
	}

	acct, err := s.ledger.GetAccountInfo(c.Context(), noteAddr)
	if err != nil {
		klog.Exitf("%s", err)
	}

	fmt.Printf("title: %s\nmsg: %s\nowner: %s\n", note.Title, note.Msg, note.Owner)
	fmt.Println(util.PrettyPrintAcct(acct))
}
