package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/chapterly"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Reader    chapterly.Reader
	Converter chapterly.Converter
	Logger    *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config `embed:""`

	Serve ServeCmd `cmd:"" help:"Serve the chapter reader over HTTP"`
	Read  ReadCmd  `cmd:"" help:"Read a chapter and print it"`
}

// Config holds the flags shared by every command.
type Config struct {
	Target      string `name:"target" default:"id" env:"CHAPTERLY_TARGET" help:"Target language code"`
	Translator  string `enum:"google,gemini,none" default:"google" env:"CHAPTERLY_TRANSLATOR" help:"Translation backend (google, gemini, none)"`
	GeminiModel string `default:"gemini-2.5-flash" env:"CHAPTERLY_GEMINI_MODEL" help:"Gemini model used for translation"`
	GeminiKey   string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`

	GeminiTimeout time.Duration `default:"60s" env:"CHAPTERLY_GEMINI_TIMEOUT" help:"Timeout for a single Gemini request"`

	Extractor  string   `enum:"readability,selector,trafilatura" default:"readability" env:"CHAPTERLY_EXTRACTOR" help:"Content extraction mode (readability, selector, trafilatura)"`
	FetchChain []string `default:"direct,headless" env:"CHAPTERLY_FETCH_CHAIN" help:"Fetch strategies in order (direct, headless, proxy)"`

	DirectTimeout     time.Duration `default:"10s" env:"CHAPTERLY_DIRECT_TIMEOUT" help:"Timeout for a direct fetch"`
	NavigationTimeout time.Duration `default:"30s" env:"CHAPTERLY_NAVIGATION_TIMEOUT" help:"Headless navigation timeout"`
	SettleDelay       time.Duration `default:"2s" env:"CHAPTERLY_SETTLE_DELAY" help:"Wait after navigation before capturing HTML"`
	ProxyTimeout      time.Duration `default:"60s" env:"CHAPTERLY_PROXY_TIMEOUT" help:"Timeout for a proxy render"`
	ProxyEndpoint     string        `env:"CHAPTERLY_PROXY_ENDPOINT" help:"Rendering proxy endpoint"`
	ProxyKey          string        `name:"proxy-api-key" env:"CHAPTERLY_PROXY_API_KEY" help:"Rendering proxy API key"`
	FetchRate         float64       `default:"0" env:"CHAPTERLY_FETCH_RATE" help:"Page fetches per second to one host (0 for unlimited)"`

	Cache         string        `enum:"memory,sqlite,none" default:"memory" env:"CHAPTERLY_CACHE" help:"Document cache backend (memory, sqlite, none)"`
	CachePath     string        `env:"CHAPTERLY_CACHE_PATH" help:"SQLite cache path (default: ~/.chapterly/cache.db)"`
	CacheTTL      time.Duration `name:"cache-ttl" default:"30m" env:"CHAPTERLY_CACHE_TTL" help:"Cache entry lifetime"`
	CacheCapacity int           `default:"100" env:"CHAPTERLY_CACHE_CAPACITY" help:"Maximum number of cached chapters"`

	ChunkSize   int     `default:"40" env:"CHAPTERLY_CHUNK_SIZE" help:"Paragraphs per translation request"`
	Concurrency int     `short:"c" default:"2" env:"CHAPTERLY_CONCURRENCY" help:"Translation requests in flight"`
	RateLimit   float64 `default:"0" env:"CHAPTERLY_RATE_LIMIT" help:"Translation requests per second (0 for unlimited)"`
	Placeholder string  `default:"Untitled" env:"CHAPTERLY_PLACEHOLDER" help:"Title used when none is found"`

	LogLevel  string `enum:"debug,info,warn,error" default:"info" env:"CHAPTERLY_LOG_LEVEL" help:"Log level"`
	LogFormat string `enum:"text,json" default:"text" env:"CHAPTERLY_LOG_FORMAT" help:"Log format"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr           string        `default:":8080" env:"CHAPTERLY_ADDR" help:"Bind address"`
	RequestTimeout time.Duration `default:"120s" env:"CHAPTERLY_REQUEST_TIMEOUT" help:"Deadline for a single read"`
	CORSOrigins    []string      `name:"cors-origin" env:"CHAPTERLY_CORS_ORIGINS" help:"Allowed CORS origins (default: all)"`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	URL      string `arg:"" help:"Chapter URL"`
	Format   string `short:"f" enum:"html,markdown,json" default:"html" help:"Output format (html, markdown, json)"`
	Chapters int    `short:"n" default:"1" help:"Number of chapters to read, following next links"`
	Out      string `short:"o" help:"Save each chapter as markdown under this directory"`
}
