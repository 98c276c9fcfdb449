package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/author-service/internal/utils"
	"github.com/iliyamo/author-service/internal/validate"
)

func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a value and print its canonical form",
	}

	validateCmd.AddCommand(&cobra.Command{
		Use:   "uuid VALUE",
		Short: "Validate a v4 identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := validate.ValidateIdentifier(validate.IDString(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	})

	validateCmd.AddCommand(&cobra.Command{
		Use:   "date YYYY-MM-DD",
		Short: "Validate a calendar date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := validate.ValidateDate(validate.DateString(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.Format("2006-01-02"))
			return nil
		},
	})

	validateCmd.AddCommand(&cobra.Command{
		Use:   "time HH:MM:SS[.ffffff]",
		Short: "Validate a wall clock time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := validate.ValidateTime(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	})

	validateCmd.AddCommand(&cobra.Command{
		Use:   `datetime "YYYY-MM-DD HH:MM:SS[.ffffff]"`,
		Short: "Validate a date and time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := validate.ValidateDateTime(validate.DateString(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dt.Format("2006-01-02 15:04:05.999999"))
			return nil
		},
	})

	return validateCmd
}

func newHashCmd() *cobra.Command {
	var verify string
	cmd := &cobra.Command{
		Use:   "hash PASSWORD",
		Short: "Print an argon2id hash, or check one with --verify",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verify != "" {
				if !utils.VerifyPassword(verify, args[0]) {
					return fmt.Errorf("password does not match hash")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			h, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().StringVar(&verify, "verify", "", "Existing hash to check the password against")
	return cmd
}
