package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/storage/sqlite"
)

var errPasswordMismatch = errors.New("passwords do not match")

func newCreateSuperuserCommand(root *rootOptions) *cobra.Command {
	var (
		username    string
		displayName string
		password    string
	)
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account",
		Long: "Create a staff account. This is how the first privileged user is made; " +
			"further ones can be created over the AccountService.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}

			if username == "" {
				return errors.New("--username is required")
			}
			if password == "" {
				password, err = promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			user, err := auth.NewPasswordAuthenticator(store).Register(cmd.Context(), username, displayName, password, true)
			if err != nil {
				return fmt.Errorf("failed to create superuser: %w", err)
			}

			logger.Info("Superuser created", "user_id", user.ID, "username", user.Username)
			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&displayName, "display-name", "", "display name (default: username)")
	cmd.Flags().StringVar(&password, "password", "", "password; prompted for when omitted")
	return cmd
}

// promptPassword reads the password twice. On a terminal the input is not
// echoed; otherwise one line is read per prompt.
func promptPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		fmt.Fprint(out, "Password (again): ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		if string(first) != string(second) {
			return "", errPasswordMismatch
		}
		return string(first), nil
	}

	r := bufio.NewReader(in)
	var lines [2]string
	for i := range lines {
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		lines[i] = strings.TrimRight(line, "\r\n")
	}
	if lines[0] != lines[1] {
		return "", errPasswordMismatch
	}
	return lines[0], nil
}
