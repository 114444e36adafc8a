package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kvernberg/lovchat/internal/config"
	"github.com/kvernberg/lovchat/internal/ingest"
	"github.com/kvernberg/lovchat/internal/present"
	"github.com/kvernberg/lovchat/internal/ui"
	"github.com/kvernberg/lovchat/internal/wire"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the local document index",
	}
	cmd.AddCommand(newIndexUpdateCmd())
	cmd.AddCommand(newIndexStatusCmd())
	return cmd
}

func newIndexUpdateCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Download the configured Lovdata archives and (re)build the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()
			if err := refreshIndex(cmd.Context(), app, force); err != nil {
				return err
			}
			docs, err := app.Store.Documents(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %d documents\n", app.Bot.CurrentIndex().Len(), len(docs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "re-download archives and rebuild from scratch")
	return cmd
}

func newIndexStatusCmd() *cobra.Command {
	var output string
	var tui bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show indexed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			defer app.Close()
			docs, err := app.Store.Documents(cmd.Context())
			if err != nil {
				return err
			}
			if tui {
				return ui.RenderDocumentsTable(cmd.Context(), docs)
			}
			mode, ok := present.ParseMode(output)
			if !ok {
				return fmt.Errorf("unknown output mode %q", output)
			}
			n, err := app.Store.CountChunks(cmd.Context())
			if err != nil {
				return err
			}
			if mode != present.ModeJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "%d documents, %d chunks\n\n", len(docs), n)
			}
			return present.RenderDocuments(cmd.OutOrStdout(), docs, present.Options{
				Mode:       mode,
				Headers:    true,
				JSONIndent: true,
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output mode: plain|json")
	cmd.Flags().BoolVar(&tui, "tui", false, "browse documents in an interactive table")
	return cmd
}

// refreshIndex runs the full ingest pipeline: download each configured
// archive, extract it, parse the XML documents into chunks, persist them, and
// rebuild the in-memory index. With index.prebuilt_url set, a ready-made
// chunk database is downloaded and imported instead. force wipes the store
// and re-downloads.
func refreshIndex(ctx context.Context, app *wire.App, force bool) error {
	v := app.Cfg
	rawDir := config.ResolveRawDir(v)
	base := v.GetString("lovdata.base_url")
	chunkChars := v.GetInt("index.chunk_chars")
	client := &http.Client{Timeout: 10 * time.Minute}

	if force {
		if err := app.Store.Wipe(ctx); err != nil {
			return err
		}
	}

	// A prebuilt chunk database replaces local archive parsing entirely.
	if u := v.GetString("index.prebuilt_url"); u != "" {
		dbPath, err := ingest.DownloadPrebuilt(ctx, client, u, rawDir, force)
		if err != nil {
			return fmt.Errorf("download prebuilt index: %w", err)
		}
		n, err := app.Store.ImportFrom(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("import prebuilt index: %w", err)
		}
		app.Log.Printf("imported prebuilt index: %d new chunks", n)
		return app.Reload(ctx)
	}

	for _, name := range v.GetStringSlice("archives") {
		archivePath, err := ingest.DownloadArchive(ctx, client, base, name, rawDir, force)
		if err != nil {
			return fmt.Errorf("download %s: %w", name, err)
		}
		docDir, err := ingest.ExtractArchive(archivePath, rawDir)
		if err != nil {
			return fmt.Errorf("extract %s: %w", name, err)
		}
		chunks, errs := ingest.WalkDocuments(docDir, chunkChars)
		for _, e := range errs {
			app.Log.Printf("ingest %s: %v", name, e)
		}
		if err := app.Store.PutChunks(ctx, chunks); err != nil {
			return fmt.Errorf("store %s: %w", name, err)
		}
		app.Log.Printf("ingested %s: %d chunks", name, len(chunks))
	}

	return app.Reload(ctx)
}
