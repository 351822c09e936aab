package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entrypoint"
)

// PruneCommand removes expired access tokens and old audit events once.
type PruneCommand struct {
	Config        *config.Config
	RetentionDays int
}

func NewPruneCommand(cfg *config.Config) *PruneCommand {
	return &PruneCommand{Config: cfg}
}

func (cmd *PruneCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("prune", flag.ContinueOnError)

	fs.IntVar(&cmd.RetentionDays, "retention-days", cmd.Config.Audit.RetentionDays, "Days of audit events to keep, 0 keeps everything")
	fs.StringVar(&cmd.Config.Database.Path, "db", cmd.Config.Database.Path, "Path to the sqlite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s prune [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete expired access tokens and audit events older than the retention window.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.RetentionDays < 0 {
		return fmt.Errorf("-retention-days must not be negative")
	}
	return nil
}

func (cmd *PruneCommand) Run() error {
	cmd.Config.Audit.RetentionDays = cmd.RetentionDays
	return entrypoint.Prune(cmd.Config)
}
