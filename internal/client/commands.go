// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
)

var errNoSecret = errors.New("no secret given: use --secret, --generate or pipe it on stdin")

func (a *App) generateCommand() *cobra.Command {
	policy := models.DefaultGenerationPolicy()
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.services.VaultService.Generate(cmd.Context(), policy)
			if err != nil {
				return err
			}

			if !copyToClipboard {
				fmt.Fprintln(a.out, resp.Secret)
				fmt.Fprintf(a.out, "Strength: %.1f bits\n", resp.EntropyBits)
				return nil
			}

			fmt.Fprintf(a.out, "Strength: %.1f bits\n", resp.EntropyBits)
			done, err := a.services.VaultService.CopyText(resp.Secret)
			if err != nil {
				return err
			}
			return a.waitForClear(cmd.Context(), done)
		},
	}

	addPolicyFlags(cmd, &policy)
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "copy to the clipboard instead of printing")

	return cmd
}

func addPolicyFlags(cmd *cobra.Command, policy *models.GenerationPolicy) {
	flags := cmd.Flags()
	flags.IntVarP(&policy.Length, "length", "l", policy.Length, "secret length")
	flags.BoolVar(&policy.IncludeUppercase, "upper", policy.IncludeUppercase, "include uppercase letters")
	flags.BoolVar(&policy.IncludeLowercase, "lower", policy.IncludeLowercase, "include lowercase letters")
	flags.BoolVar(&policy.IncludeNumbers, "numbers", policy.IncludeNumbers, "include digits")
	flags.BoolVar(&policy.IncludeSymbols, "symbols", policy.IncludeSymbols, "include symbols")
	flags.BoolVar(&policy.ExcludeAmbiguous, "exclude-ambiguous", policy.ExcludeAmbiguous, "leave out look-alike characters")
}

// draftFlags collects the record fields shared by add and update.
type draftFlags struct {
	title, username, secret, url, notes string
	generate                            bool
	policy                              models.GenerationPolicy
}

func (f *draftFlags) register(cmd *cobra.Command) {
	f.policy = models.DefaultGenerationPolicy()

	flags := cmd.Flags()
	flags.StringVarP(&f.title, "title", "t", "", "record title")
	flags.StringVarP(&f.username, "username", "u", "", "login name")
	flags.StringVarP(&f.secret, "secret", "s", "", "secret value (read from stdin when omitted)")
	flags.StringVar(&f.url, "url", "", "service address")
	flags.StringVar(&f.notes, "notes", "", "free-form notes")
	flags.BoolVarP(&f.generate, "generate", "g", false, "generate the secret with the default policy")
	flags.IntVar(&f.policy.Length, "length", f.policy.Length, "length of a generated secret")
	_ = cmd.MarkFlagRequired("title")
}

func (f *draftFlags) draft(a *App, cmd *cobra.Command) (models.RecordDraft, error) {
	secret := f.secret
	switch {
	case secret != "":
	case f.generate:
		resp, err := a.services.VaultService.Generate(cmd.Context(), f.policy)
		if err != nil {
			return models.RecordDraft{}, err
		}
		secret = resp.Secret
	default:
		line, err := bufio.NewReader(a.in).ReadString('\n')
		secret = strings.TrimRight(line, "\r\n")
		if secret == "" {
			if err != nil {
				return models.RecordDraft{}, fmt.Errorf("%w: %w", errNoSecret, err)
			}
			return models.RecordDraft{}, errNoSecret
		}
	}

	return models.RecordDraft{
		Title:    f.title,
		Username: optional(f.username),
		Secret:   secret,
		URL:      optional(f.url),
		Notes:    optional(f.notes),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (a *App) addCommand() *cobra.Command {
	var f draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			draft, err := f.draft(a, cmd)
			if err != nil {
				return err
			}

			record, err := a.services.VaultService.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Saved %q as %s\n", record.Title, record.ID)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func (a *App) updateCommand() *cobra.Command {
	var f draftFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a record; the secret is re-encrypted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := f.draft(a, cmd)
			if err != nil {
				return err
			}

			record, err := a.services.VaultService.Update(cmd.Context(), args[0], draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Updated %q (%s)\n", record.Title, record.ID)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func (a *App) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "List records, newest first; secrets stay masked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query models.ListQuery
			if len(args) == 1 {
				query.Filter = args[0]
			}

			records, err := a.services.VaultService.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(a.out, "No records.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tURL\tSECRET\tUPDATED")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Title, deref(r.Username), deref(r.URL), service.MaskedSecret,
					r.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func (a *App) revealCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <id>",
		Short: "Print the secret of one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := a.services.VaultService.RevealForDisplay(cmd.Context(), args[0])
			fmt.Fprintln(a.out, secret)
			return err
		},
	}
}

func (a *App) copyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy the secret of one record to the clipboard",
		Long: `Copy the secret of one record to the clipboard.

The command waits until the clipboard is cleared. Interrupting it clears the
clipboard immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := a.services.VaultService.Copy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.waitForClear(cmd.Context(), done)
		},
	}
}

func (a *App) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record and its secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.services.VaultService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *App) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write an encrypted backup of all records to the server's object store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.services.VaultService.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported %d records to %s\n", resp.Records, resp.Object)
			return nil
		},
	}
}

func (a *App) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token <identity>",
		Short: "Issue a bearer token locally (needs APP_TOKEN_SIGN_KEY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.services.AuthService.CreateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token.SignedString)
			return nil
		},
	}
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(a.out, "Client: %s (%s, %s)\n", a.buildInfo.Version, a.buildInfo.Date, a.buildInfo.Commit)

			info, err := a.services.VaultService.ServerVersion(cmd.Context())
			if err != nil {
				fmt.Fprintf(a.out, "Server: unavailable (%v)\n", err)
				return nil
			}
			fmt.Fprintf(a.out, "Server: %s (%s, %s)\n", info.Version, info.Date, info.Commit)
			return nil
		},
	}
}
