package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the local inference server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := cli.client.Health(cmd.Context())
		if errors.Is(err, domain.ErrBackendUnavailable) {
			fmt.Println(cli.styles.Error.Render("backend: ") + "not running at " + cli.cfg.BackendURL)
			fmt.Println(cli.styles.Muted.Render("start it with: aipify-backend"))
			return err
		}
		if err != nil {
			return err
		}

		fmt.Println(cli.styles.Success.Render("backend: ") + res.Status + " at " + cli.cfg.BackendURL)
		fmt.Printf("  chat model:      %s\n", res.Models.Chat)
		fmt.Printf("  embedding model: %s\n", res.Models.Embedding)
		return nil
	},
}

var embedCmd = &cobra.Command{
	Use:   "embed <text>",
	Short: "Compute an embedding through the local backend",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vec, err := cli.client.Embeddings(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(cli.styles.Muted.Render(fmt.Sprintf("%d dimensions", len(vec))))
		for i, v := range vec {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Printf("%.4f", v)
		}
		fmt.Println()
		return nil
	},
}
