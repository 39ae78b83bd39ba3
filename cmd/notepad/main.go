package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/Overclock-Validator/notepad/cmd/notepad/derive"
	"github.com/Overclock-Validator/notepad/cmd/notepad/fetch"
	"github.com/Overclock-Validator/notepad/cmd/notepad/note"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var cmd = cobra.Command{
	Use:   "notepad",
	Short: "notepad program runner and client",
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	cmd.PersistentFlags().String("config", "", "Path of the YAML config file")

	cmd.AddCommand(
		&derive.Cmd,
		&note.CreateCmd,
		&note.ModifyCmd,
		&note.ShowCmd,
		&fetch.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
