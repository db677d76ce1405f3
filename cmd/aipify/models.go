package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/models"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show selectable models and local model files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsList()
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the model catalog for the current mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModelsList()
	},
}

var modelsUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select a model for the active session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := cli.settings.Mode()
		id := domain.ModelID(args[0])
		if !models.InCatalog(mode, id) {
			return fmt.Errorf("model %q is not in the %s catalog", id, mode)
		}

		sess, err := cli.sessions.Active()
		if err != nil {
			return err
		}
		if err := cli.sessions.SetModel(sess.ID, id); err != nil {
			return err
		}
		fmt.Println(cli.styles.Success.Render("model: ") + string(id))
		return nil
	},
}

var modelsDownloadCmd = &cobra.Command{
	Use:   "download [artifact-id...]",
	Short: "Download GGUF model files for the local backend",
	Long:  "Downloads the model files the local inference server loads at startup. With no arguments all known artifacts are fetched; pass artifact ids (chat, embedding, gemma) to fetch a subset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		files := models.Files()
		if len(args) > 0 {
			files = files[:0]
			for _, id := range args {
				mf, ok := models.FileByID(id)
				if !ok {
					return fmt.Errorf("unknown artifact %q", id)
				}
				files = append(files, mf)
			}
		}

		dl := models.NewDownloader(cli.cfg.ModelsDir)
		dl.SetProgress(func(file string, done, total int64) {
			if total > 0 {
				fmt.Printf("\r%s: %3d%%", file, done*100/total)
			} else {
				fmt.Printf("\r%s: %d MB", file, done>>20)
			}
		})

		for _, mf := range files {
			fmt.Println(cli.styles.Heading.Render(mf.Name) + cli.styles.Muted.Render(" "+mf.SizeHint))
			if err := dl.Ensure(cmd.Context(), mf); err != nil {
				fmt.Println()
				return err
			}
			fmt.Println()
		}

		fmt.Println(cli.styles.Success.Render("all requested model files are in place"))
		return nil
	},
}

func runModelsList() error {
	mode := cli.settings.Mode()
	sess, err := cli.sessions.Active()
	if err != nil {
		return err
	}

	fmt.Println(cli.styles.Heading.Render(fmt.Sprintf("%s models", mode)))
	for _, m := range models.CatalogFor(mode) {
		marker := "  "
		if m.ID == sess.ModelID {
			marker = cli.styles.Success.Render("* ")
		}
		fmt.Printf("%s%-24s %s\n", marker, m.ID, cli.styles.Muted.Render(m.Description))
	}

	fmt.Println()
	fmt.Println(cli.styles.Heading.Render("local model files"))
	for _, mf := range models.Files() {
		status := cli.styles.Warn.Render("missing")
		if mf.Exists(cli.cfg.ModelsDir) {
			status = cli.styles.Success.Render("downloaded")
		}
		fmt.Printf("  %-12s %-28s %s %s\n", mf.ID, mf.File, status, cli.styles.Muted.Render(mf.SizeHint))
	}
	return nil
}

func init() {
	modelsCmd.AddCommand(modelsListCmd, modelsUseCmd, modelsDownloadCmd)
}
