package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/models"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionsList()
	},
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSessionsList()
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new session and make it active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := cli.settings.Mode()
		sess, err := cli.sessions.Create(models.DefaultModel(mode))
		if err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("created ") + string(sess.ID))
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a session's transcript (active session by default)",
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

		fmt.Println(cli.styles.Heading.Render(sess.Title))
		fmt.Println(cli.styles.Muted.Render(fmt.Sprintf("id %s · model %s · created %s",
			sess.ID, sess.ModelID, sess.CreatedAt.Format("2006-01-02 15:04"))))
		for _, m := range sess.Messages {
			tag := cli.styles.Assistant.Render("AI: ")
			if m.Role == domain.RoleUser {
				tag = cli.styles.User.Render("You: ")
			}
			fmt.Println(tag + m.Content)
		}
		return nil
	},
}

var sessionsUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Make a session active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.sessions.SetActive(domain.SessionID(args[0])); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("active session: ") + args[0])
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.sessions.Delete(domain.SessionID(args[0])); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("deleted ") + args[0])
		return nil
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := domain.SessionID(args[0])
		title := strings.Join(args[1:], " ")
		if err := cli.sessions.Rename(id, title); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("renamed to ") + title)
		return nil
	},
}

func runSessionsList() error {
	active, err := cli.sessions.Active()
	if err != nil {
		return err
	}

	for _, sess := range cli.sessions.List() {
		marker := "  "
		if sess.ID == active.ID {
			marker = cli.styles.Success.Render("* ")
		}
		fmt.Printf("%s%s  %s %s\n",
			marker,
			sess.ID,
			cli.styles.Heading.Render(sess.Title),
			cli.styles.Muted.Render(fmt.Sprintf("(%d messages)", len(sess.Messages))),
		)
	}
	return nil
}

func init() {
	sessionsCmd.AddCommand(
		sessionsListCmd,
		sessionsNewCmd,
		sessionsShowCmd,
		sessionsUseCmd,
		sessionsDeleteCmd,
		sessionsRenameCmd,
	)
}
