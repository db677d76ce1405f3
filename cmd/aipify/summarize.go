package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/domain"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [id]",
	Short: "Summarize a session (active session by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			sess *domain.ChatSession
			err  error
		)
		if len(args) == 1 {
			sess, err = cli.sessions.Get(domain.SessionID(args[0]))
		} else {
			sess, err = cli.sessions.Active()
		}
		if err != nil {
			return err
		}

		summary, err := cli.router.Summarize(cmd.Context(), cli.routeRequest(sess), sess.Messages)
		if err != nil {
			return err
		}

		fmt.Println(cli.styles.Heading.Render("Summary of " + sess.Title))
		fmt.Println(summary)
		return nil
	},
}
