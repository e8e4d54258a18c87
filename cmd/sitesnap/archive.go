package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/sitesnap/fs"
)

// Run executes the archive command.
func (c *ArchiveCmd) Run(deps *Dependencies) error {
	if info, err := os.Stat(c.Dir); err != nil || !info.IsDir() {
		fmt.Fprintf(deps.Stderr, "error: snapshot directory %s not found\n", c.Dir)
		return fmt.Errorf("snapshot directory %s not found", c.Dir)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	a := &fs.Archive{Title: c.Title, BaseURL: c.BaseURL}
	if err := a.Write(f, os.DirFS(c.Dir)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to render archive: %v\n", err)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote archive index to %s\n", c.Output)
	return nil
}
