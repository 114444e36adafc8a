package cli

import (
	"github.com/spf13/cobra"

	"github.com/kvernberg/lovchat/internal/ui"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open an interactive chat session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()
			return ui.RunChat(cmd.Context(), app.Bot, ui.ChatOptions{
				Style: app.Cfg.GetString("chat.style"),
				Model: app.Cfg.GetString("openai.model"),
			})
		},
	}
	return cmd
}
