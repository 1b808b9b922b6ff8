package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/chapterly"
	"github.com/fwojciec/chapterly/gemini"
	"github.com/fwojciec/chapterly/goquery"
	chhttp "github.com/fwojciec/chapterly/http"
	"github.com/fwojciec/chapterly/memory"
	"github.com/fwojciec/chapterly/pipeline"
	"github.com/fwojciec/chapterly/readability"
	"github.com/fwojciec/chapterly/rod"
	chslog "github.com/fwojciec/chapterly/slog"
	"github.com/fwojciec/chapterly/sqlite"
	"github.com/fwojciec/chapterly/trafilatura"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiTokenLimit is the largest batch prompt sent to Gemini in one request.
const geminiTokenLimit = 16000

// wire builds the reading pipeline described by cfg. Resources that need
// releasing are registered with m and closed by m.Close.
func (m *Main) wire(ctx context.Context, cfg *Config, logger *slog.Logger, stderr io.Writer) (chapterly.Reader, error) {
	strategies, err := buildStrategies(cfg, logger)
	if err != nil {
		return nil, err
	}
	chain := pipeline.NewChain(logger, strategies...)
	m.closers = append(m.closers, chain)

	extractor, err := buildExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	translator, err := buildTranslator(ctx, cfg, logger, stderr)
	if err != nil {
		return nil, err
	}

	cache, err := m.openCache(cfg)
	if err != nil {
		return nil, err
	}

	var fetchLimiter *pipeline.HostLimiter
	if cfg.FetchRate > 0 {
		fetchLimiter = pipeline.NewHostLimiter(cfg.FetchRate)
	}

	return &pipeline.Pipeline{
		Source:       chain,
		FetchLimiter: fetchLimiter,
		Extractor:    extractor,
		Titles:       goquery.NewTitleResolver(),
		NextLinks:    goquery.NewNextLinkResolver(),
		Paragraphs:   goquery.NewParagraphEditor(),
		Translator:   translator,
		Cache:        cache,
		Placeholder:  cfg.Placeholder,
		Logger:       logger,
	}, nil
}

// buildStrategies returns the fetch strategies named in cfg.FetchChain,
// in order, each wrapped with logging.
func buildStrategies(cfg *Config, logger *slog.Logger) ([]pipeline.Strategy, error) {
	var strategies []pipeline.Strategy
	for _, name := range cfg.FetchChain {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		var f chapterly.Fetcher
		switch name {
		case "direct":
			f = chhttp.NewFetcher(chhttp.WithTimeout(cfg.DirectTimeout))
		case "headless":
			f = rod.NewFetcher(
				rod.WithNavigationTimeout(cfg.NavigationTimeout),
				rod.WithSettleDelay(cfg.SettleDelay),
			)
		case "proxy":
			if cfg.ProxyKey == "" {
				return nil, chapterly.Errorf(chapterly.EINVALID, "proxy strategy requires CHAPTERLY_PROXY_API_KEY")
			}
			opts := []chhttp.ProxyOption{chhttp.WithProxyTimeout(cfg.ProxyTimeout)}
			if cfg.ProxyEndpoint != "" {
				opts = append(opts, chhttp.WithProxyEndpoint(cfg.ProxyEndpoint))
			}
			f = chhttp.NewProxyFetcher(cfg.ProxyKey, opts...)
		default:
			return nil, chapterly.Errorf(chapterly.EINVALID, "unknown fetch strategy %q (want direct, headless, or proxy)", name)
		}

		strategies = append(strategies, pipeline.Strategy{
			Name:    name,
			Fetcher: chslog.NewLoggingFetcher(f, name, logger),
		})
	}
	if len(strategies) == 0 {
		return nil, chapterly.Errorf(chapterly.EINVALID, "fetch chain is empty")
	}
	return strategies, nil
}

func buildExtractor(mode string) (chapterly.Extractor, error) {
	switch mode {
	case "readability", "":
		return readability.NewExtractor(), nil
	case "selector":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	default:
		return nil, chapterly.Errorf(chapterly.EINVALID, "unknown extractor %q", mode)
	}
}

// buildTranslator returns nil when translation is disabled.
func buildTranslator(ctx context.Context, cfg *Config, logger *slog.Logger, stderr io.Writer) (*pipeline.Translator, error) {
	var backend chapterly.Translator
	switch cfg.Translator {
	case "none":
		return nil, nil
	case "google", "":
		backend = chhttp.NewTranslator(cfg.Target)
	case "gemini":
		if cfg.GeminiKey == "" {
			fmt.Fprintln(stderr, "Hint: get an API key at https://aistudio.google.com/apikey")
			return nil, chapterly.Errorf(chapterly.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		opts := []gemini.Option{
			gemini.WithModel(cfg.GeminiModel),
			gemini.WithTimeout(cfg.GeminiTimeout),
		}
		if counter, err := gemini.NewTokenCounter(cfg.GeminiModel); err != nil {
			logger.Warn("token counting unavailable, batches will not be split", "model", cfg.GeminiModel, "err", err)
		} else {
			opts = append(opts, gemini.WithTokenLimit(counter, geminiTokenLimit))
		}
		backend = gemini.NewTranslator(client, cfg.Target, opts...)
	default:
		return nil, chapterly.Errorf(chapterly.EINVALID, "unknown translator %q", cfg.Translator)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &pipeline.Translator{
		Backend:     chslog.NewLoggingTranslator(backend, logger),
		ChunkSize:   cfg.ChunkSize,
		Concurrency: cfg.Concurrency,
		Limiter:     limiter,
		Logger:      logger,
	}, nil
}

// openCache returns nil when caching is disabled.
func (m *Main) openCache(cfg *Config) (chapterly.DocumentCache, error) {
	switch cfg.Cache {
	case "none":
		return nil, nil
	case "memory", "":
		return memory.NewCache(cfg.CacheTTL, cfg.CacheCapacity), nil
	case "sqlite":
		path := cfg.CachePath
		if path == "" {
			path = defaultCachePath()
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache at %q: %w", path, err)
		}
		return sqlite.NewCache(m.DB, cfg.CacheTTL, cfg.CacheCapacity), nil
	default:
		return nil, chapterly.Errorf(chapterly.EINVALID, "unknown cache %q", cfg.Cache)
	}
}
