package wire

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/kvernberg/lovchat/internal/bot"
	"github.com/kvernberg/lovchat/internal/config"
	"github.com/kvernberg/lovchat/internal/index"
)

// App aggregates the major services for easy injection. The in-memory index
// lives inside Bot, behind its atomic pointer, so Reload can swap it while
// the HTTP handlers keep answering.
type App struct {
	Cfg   *viper.Viper
	Log   *log.Logger
	Store *index.Store
	Bot   *bot.Bot
}

// BuildApp wires dependencies with the provided config: it opens the chunk
// store, rebuilds the in-memory index from it, and constructs the bot. The
// generation client is only attached when an API key is configured.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "lovchat ", log.LstdFlags)

	store, err := index.OpenStore(ctx, config.ResolveDBPath(cfg))
	if err != nil {
		return nil, err
	}
	chunks, err := store.ListChunks(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	ix := index.Build(chunks, cfg.GetInt("index.max_features"))

	var client bot.Completer
	if key := cfg.GetString("openai.api_key"); key != "" {
		client = bot.NewClient(key, cfg.GetString("openai.base_url"))
	}
	b := bot.New(ix, client, cfg.GetString("openai.model"), cfg.GetInt("retrieval.top_k"))

	return &App{
		Cfg:   cfg,
		Log:   logger,
		Store: store,
		Bot:   b,
	}, nil
}

// Reload rebuilds the in-memory index from the store, after re-ingestion,
// and swaps it into the bot.
func (a *App) Reload(ctx context.Context) error {
	chunks, err := a.Store.ListChunks(ctx)
	if err != nil {
		return err
	}
	a.Bot.SetIndex(index.Build(chunks, a.Cfg.GetInt("index.max_features")))
	return nil
}

// Close releases held resources.
func (a *App) Close() error {
	return a.Store.Close()
}
