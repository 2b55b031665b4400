package cmd

import (
	"fmt"

	"github.com/lepinkainen/backlog/internal/config"
	"github.com/lepinkainen/backlog/internal/dashboard"
)

// DashboardCmd rebuilds the index from the vault notes and prints the summary.
type DashboardCmd struct {
	WriteNote bool `help:"Also write a Dataview dashboard note into the backlog folder"`
}

func (d *DashboardCmd) Run() error {
	index, err := openIndex(config.DBFile)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer func() { _ = index.Close() }()

	dir := backlogDir()
	summary, err := dashboard.Rebuild(dir, index)
	if err != nil {
		return err
	}

	if err := dashboard.Render(out, summary); err != nil {
		return err
	}

	if d.WriteNote {
		path, err := dashboard.WriteNote(dir, config.VaultFolder)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}
