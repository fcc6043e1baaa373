package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-social-api/cmd/socialctl/ui"
	"github.com/redmonkez12/go-social-api/internal/user"
)

func newCreateSuperuserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active admin account",
		Long:  "Creates an admin with accepted terms. Any field not given as a flag is prompted for.",
		RunE:  runCreateSuperuser,
	}

	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().Bool("no-input", false, "Fail instead of prompting for missing fields")

	return cmd
}

func runCreateSuperuser(cmd *cobra.Command, _ []string) error {
	var in ui.SuperuserInput
	in.Email, _ = cmd.Flags().GetString("email")
	in.Name, _ = cmd.Flags().GetString("name")
	in.Password, _ = cmd.Flags().GetString("password")
	noInput, _ := cmd.Flags().GetBool("no-input")

	if !in.Complete() {
		if noInput {
			return errors.New("--email, --name and --password are required with --no-input")
		}
		if err := ui.RunSuperuserForm(&in); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	if err := in.Validate(); err != nil {
		return err
	}

	a, err := openAll(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	admin, err := a.auth.CreateSuperuser(cmd.Context(), in.Email, in.Name, in.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return fmt.Errorf("user with email %s already exists", user.NormalizeEmail(in.Email))
		}
		return err
	}

	ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Superuser %s created (%s)", admin.Email, admin.ID))
	return nil
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Soft-delete an account and revoke its sessions",
		RunE:  runDeleteUser,
	}
	deleteCmd.Flags().String("email", "", "Email of the account to delete")
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
	_ = deleteCmd.MarkFlagRequired("email")

	userCmd.AddCommand(deleteCmd)
	return userCmd
}

func runDeleteUser(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	yes, _ := cmd.Flags().GetBool("yes")

	a, err := openAll(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	target, err := a.users.GetByEmail(cmd.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("no active user with email %s", user.NormalizeEmail(email))
		}
		return err
	}

	if !yes {
		ok, err := ui.Confirm(fmt.Sprintf("Delete %s (%s)?", target.Email, target.Name))
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := a.users.SoftDelete(cmd.Context(), target.ID); err != nil {
		return err
	}

	// Deleted users fail authentication regardless of outstanding tokens.
	if err := a.auth.RevokeAll(cmd.Context(), target.ID); err != nil {
		a.logger.Warn("failed to revoke refresh tokens", "user_id", target.ID.String(), "error", err.Error())
	}

	ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("User %s deleted", target.Email))
	return nil
}
