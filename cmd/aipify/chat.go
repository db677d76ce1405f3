package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/app/router"
	"github.com/aipify/aipify-local/internal/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a message in the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), strings.Join(args, " "))
	},
}

func runChat(ctx context.Context, message string) error {
	sess, err := cli.sessions.Active()
	if err != nil {
		return err
	}

	history := append([]domain.Message(nil), sess.Messages...)

	if _, err := cli.sessions.Append(sess.ID, domain.RoleUser, message); err != nil {
		return err
	}
	fmt.Println(cli.styles.User.Render("You: ") + message)

	req := cli.routeRequest(sess)

	reply, chatErr := cli.router.Chat(ctx, req, message, history)
	if chatErr != nil {
		fmt.Println(cli.styles.Error.Render("error: ") + chatErr.Error())
		reply = degradedReply(ctx, req, message, chatErr)
	}

	if _, err := cli.sessions.Append(sess.ID, domain.RoleAssistant, reply); err != nil {
		return err
	}
	fmt.Println(cli.styles.Assistant.Render("AI: ") + reply)

	maybeGenerateTitle(ctx, req, sess.ID)
	return nil
}

// degradedReply produces the assistant turn shown when generation failed, so
// a sent message is never left unanswered.
func degradedReply(ctx context.Context, req router.Request, message string, cause error) string {
	if errors.Is(cause, domain.ErrBackendUnavailable) || errors.Is(cause, domain.ErrModelNotLoaded) {
		text, _ := llm.NewMock().GenerateText(ctx, domain.GenerateRequest{
			ModelID: req.ModelID,
			Prompt:  message,
		})
		return text
	}
	if errors.Is(cause, domain.ErrCredentialRequired) {
		return "I can't reach the online service without an API key. Set one with `aipify key set` or switch to offline mode."
	}
	return fmt.Sprintf("Sorry, I couldn't process that request. (%v)", cause)
}

// maybeGenerateTitle replaces the placeholder title after the first full
// exchange. Failures only cost us the nicer title, so they are not fatal.
func maybeGenerateTitle(ctx context.Context, req router.Request, id domain.SessionID) {
	sess, err := cli.sessions.Get(id)
	if err != nil || sess.Title != domain.PlaceholderTitle || len(sess.Messages) < 2 {
		return
	}

	title, err := cli.router.Title(ctx, req, sess.Messages)
	if err != nil || title == "" {
		fmt.Println(cli.styles.Muted.Render("(could not generate a session title)"))
		return
	}

	if err := cli.sessions.Rename(id, title); err == nil {
		fmt.Println(cli.styles.Muted.Render("session titled: " + title))
	}
}
