package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/author-service/internal/model"
	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/validate"
)

func newAuthorCmd(open repoOpener) *cobra.Command {
	authorCmd := &cobra.Command{Use: "author", Short: "Author operations against the store"}

	// withRepo opens the store for the length of one command.
	withRepo := func(run func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			return run(ctx, cmd, repo, args)
		}
	}

	authorCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every author",
		Args:  cobra.NoArgs,
		RunE: withRepo(func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, _ []string) error {
			authors, err := repo.GetAll(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tACTIVATED")
			for _, a := range authors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", a.ID(), a.Username(), a.Email(), a.IsActivated())
			}
			return w.Flush()
		}),
	})

	authorCmd.AddCommand(&cobra.Command{
		Use:   "get AUTHOR_ID",
		Short: "Print one author as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withRepo(func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, args []string) error {
			id, err := validate.ParseIdentifier(args[0])
			if err != nil {
				return err
			}
			a, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd, a)
		}),
	})

	authorCmd.AddCommand(&cobra.Command{
		Use:   "get-by-username USERNAME",
		Short: "Print one author as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withRepo(func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, args []string) error {
			a, err := repo.GetByUsername(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, a)
		}),
	})

	authorCmd.AddCommand(&cobra.Command{
		Use:   "delete AUTHOR_ID",
		Short: "Delete an author",
		Args:  cobra.ExactArgs(1),
		RunE: withRepo(func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, args []string) error {
			id, err := validate.ParseIdentifier(args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		}),
	})

	authorCmd.AddCommand(&cobra.Command{
		Use:   "activate TOKEN",
		Short: "Activate the author holding TOKEN",
		Args:  cobra.ExactArgs(1),
		RunE: withRepo(func(ctx context.Context, cmd *cobra.Command, repo *repository.AuthorRepo, args []string) error {
			a, err := repo.GetByActivationToken(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.SetActivationToken(""); err != nil {
				return err
			}
			if err := repo.Update(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "activated %s (%s)\n", a.Username(), a.ID())
			return nil
		}),
	})

	return authorCmd
}

func printJSON(cmd *cobra.Command, a *model.Author) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
