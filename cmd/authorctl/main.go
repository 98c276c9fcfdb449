// Command authorctl is an operator tool for checking values against the
// author rules and managing author rows directly in the store.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/author-service/internal/config"
	"github.com/iliyamo/author-service/internal/database"
	"github.com/iliyamo/author-service/internal/repository"
)

// repoOpener hands out a repository and the func that releases it.
type repoOpener func() (*repository.AuthorRepo, func(), error)

func openRepo() (*repository.AuthorRepo, func(), error) {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return repository.NewAuthorRepo(db), func() { _ = db.Close() }, nil
}

func newRootCmd(out io.Writer, open repoOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "authorctl",
		Short:         "Operator tool for the author service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newValidateCmd(), newHashCmd(), newAuthorCmd(open))
	return root
}

func main() {
	if err := newRootCmd(os.Stdout, openRepo).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
