package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Core paths and conventions
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; archives live in data_dir/raw, DB at data_dir/lovchat.db"},
		{Key: "archives", Default: []string{}, Comment: "Lovdata archive filenames to index; empty means the current laws and central regulations"},
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the chat server"},

		{Key: "lovdata.base_url", Default: "https://api.lovdata.no/v1/publicData/get/", Comment: "Base URL for Lovdata public-data archive downloads"},

		{Key: "openai.model", Default: "gpt-4o-mini", Comment: "Chat-completion model"},
		{Key: "openai.api_key", Default: "", Comment: "API key; OPENAI_API_KEY is honored when unset. Without a key, answers fall back to raw excerpts"},
		{Key: "openai.base_url", Default: "", Comment: "Alternate OpenAI-compatible endpoint; OPENAI_BASE_URL is honored when unset"},

		{Key: "retrieval.top_k", Default: 5, Comment: "Number of context chunks retrieved per question"},
		{Key: "index.max_features", Default: 50000, Comment: "Vocabulary cap for the TF-IDF index"},
		{Key: "index.chunk_chars", Default: 1200, Comment: "Approximate chunk size when splitting document sections"},
		{Key: "index.prebuilt_url", Default: "", Comment: "URL of a prebuilt chunk database; index update imports it instead of parsing archives"},

		{Key: "auth.token", Default: "", Comment: "Bearer token required by the /api/reindex endpoint"},
		{Key: "chat.style", Default: "dracula", Comment: "Glamour style used by ask --output pretty and the chat TUI"},

		{Key: "tls.domain", Default: "", Comment: "Enable automatic certificates (CertMagic) for this domain"},
		{Key: "tls.email", Default: "", Comment: "ACME account email"},
		{Key: "tls.cert_file", Default: "", Comment: "BYO certificate PEM (with tls.key_file)"},
		{Key: "tls.key_file", Default: "", Comment: "BYO private key PEM"},
		{Key: "tls.self_signed", Default: false, Comment: "Serve with an ephemeral self-signed certificate (testing only)"},

		{Key: "proxy.routes", Default: map[string]any{}, Comment: "Reverse-proxy mounts: [proxy.routes] \"/prefix\" = \"http://origin\""},
	}
}
