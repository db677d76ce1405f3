package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/app/settings"
	"github.com/aipify/aipify-local/internal/domain"
)

var modeCmd = &cobra.Command{
	Use:   "mode [offline|online]",
	Short: "Show or switch the request-routing mode",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(cli.styles.Heading.Render("mode: ") + string(cli.settings.Mode()))
			return nil
		}

		mode := domain.Mode(args[0])
		if err := cli.settings.SetMode(mode); err != nil {
			if errors.Is(err, domain.ErrCredentialRequired) {
				fmt.Println(cli.styles.Error.Render("online mode needs an API key."))
				fmt.Println(cli.styles.Muted.Render("set one with: aipify key set <key>, or export GEMINI_API_KEY"))
			}
			return err
		}

		// a gemini model id is meaningless offline and vice versa
		if err := cli.sessions.EnsureModelForMode(mode); err != nil {
			return err
		}

		fmt.Println(cli.styles.Success.Render("mode: ") + string(mode))
		return nil
	},
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the Gemini API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyStatus()
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the effective key comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeyStatus()
	},
}

var keySetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Store an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.settings.SetAPIKey(args[0]); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("API key saved."))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.settings.ClearAPIKey(); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("API key removed."))
		if cli.settings.Mode() == domain.ModeOffline {
			fmt.Println(cli.styles.Muted.Render("mode is offline"))
		}
		return nil
	},
}

func runKeyStatus() error {
	switch cli.settings.APIKeySource() {
	case settings.KeySourceStored:
		fmt.Println(cli.styles.Heading.Render("key: ") + "stored in the local database")
	case settings.KeySourceEnvironment:
		fmt.Println(cli.styles.Heading.Render("key: ") + "from the GEMINI_API_KEY environment variable")
	default:
		fmt.Println(cli.styles.Heading.Render("key: ") + "none")
	}
	return nil
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(cli.styles.Heading.Render("theme: ") + string(cli.settings.Theme()))
			return nil
		}
		theme := domain.Theme(args[0])
		if err := cli.settings.SetTheme(theme); err != nil {
			return err
		}
		cli.styles = newStyles(theme)
		fmt.Println(cli.styles.Success.Render("theme: ") + string(theme))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keyStatusCmd, keySetCmd, keyClearCmd)
}
