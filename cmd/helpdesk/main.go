// helpdesk answers AssessIQ questions from a fixed knowledge base.
//
// Subcommands:
//   - serve: run the HTTP API and chat UI
//   - ask: answer one question on the command line
//   - check: validate a knowledge file
//   - export: print the built-in knowledge base as YAML
package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "helpdesk",
		Short:         "AssessIQ help desk: rule-based question answering",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newServeCmd())
	root.AddCommand(newAskCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newExportCmd())
	return root
}

func main() {
	defer klog.Flush()

	if err := newRootCmd().Execute(); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}
