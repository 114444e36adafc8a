package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvernberg/lovchat/internal/present"
	"github.com/kvernberg/lovchat/internal/util"
)

func newAskCmd() *cobra.Command {
	var output string
	var topK int
	var showContexts bool
	cmd := &cobra.Command{
		Use:   "ask <spørsmål>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			app := getApp(cmd)
			defer app.Close()
			titles := util.ScoreCompletions(toComplete, app.Bot.CurrentIndex().Titles(), 10)
			return titles, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()

			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("unknown output mode %q", output)
			}

			question := strings.TrimSpace(strings.Join(args, " "))
			ans, err := app.Bot.Ask(cmd.Context(), question, topK)
			if err != nil {
				return err
			}

			opts := present.Options{
				Mode:         mode,
				JSONIndent:   true,
				Style:        app.Cfg.GetString("chat.style"),
				ShowContexts: showContexts,
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderAnswer(w, ans, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "pretty", "output mode: plain|pretty|json")
	cmd.Flags().IntVar(&topK, "top-k", 0, "number of context chunks (0 = config default)")
	cmd.Flags().BoolVar(&showContexts, "contexts", true, "list the retrieved sources after the answer")
	return cmd
}
