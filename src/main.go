package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"tweet-sentiment/src/charts"
	"tweet-sentiment/src/dashboard"
	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/tweets"
)

// Config struct for YAML config file
type Config struct {
	Listen         string          `yaml:"listen"`
	Dataset        string          `yaml:"dataset"`
	Delimiter      string          `yaml:"delimiter"`
	Title          string          `yaml:"title"`
	Logo           string          `yaml:"logo"`
	LogDir         string          `yaml:"log_dir"`
	LogLevel       string          `yaml:"log_level"`
	StopwordsFile  string          `yaml:"stopwords_file"`
	ExtraStopwords []string        `yaml:"extra_stopwords"`
	KeepWords      []string        `yaml:"keep_words"`
	FixedTokens    []string        `yaml:"fixed_tokens"`
	WordCloud      WordCloudConfig `yaml:"wordcloud"`
	Chart          ChartConfig     `yaml:"chart"`
}

type WordCloudConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	MaxWords int `yaml:"max_words"`
}

type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

const (
	defaultListen    = ":8501"
	defaultDelimiter = ","
	shutdownTimeout  = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "../config/config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Require log_dir to be present and non-empty
	if cfg.LogDir == "" {
		fmt.Fprintln(os.Stderr, "ERROR: 'log_dir' must be defined in the config file and cannot be empty.")
		os.Exit(1)
	}
	if cfg.Dataset == "" {
		fmt.Fprintln(os.Stderr, "ERROR: 'dataset' must be defined in the config file and cannot be empty.")
		os.Exit(1)
	}

	logger, logFile, err := setupLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	ds, err := tweets.LoadFile(cfg.Dataset, cfg.Delimiter)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	slog.Info("Dataset loaded", "path", cfg.Dataset, "tweets", ds.Len(), "skipped", ds.Skipped)

	normalizer, err := buildNormalizer(cfg)
	if err != nil {
		log.Fatalf("Failed to load stop words: %v", err)
	}

	h := dashboard.NewHandler(ds, normalizer, filter.WordCloudStopwords(), settingsFromConfig(cfg))
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           dashboard.SetupRoutes(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Dashboard listening", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down dashboard")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}

// buildNormalizer merges the optional stopwords_file and extra_stopwords into
// the Indonesian list, then takes keep_words back out.
func buildNormalizer(cfg *Config) (*filter.Normalizer, error) {
	stopwords := filter.IndonesianStopwords()
	if cfg.StopwordsFile != "" {
		extra := filter.NewWordFilter()
		if err := extra.LoadFromFile(cfg.StopwordsFile); err != nil {
			return nil, err
		}
		stopwords.Merge(extra)
		slog.Info("Extra stop words loaded", "path", cfg.StopwordsFile, "words", extra.GetFilteredCount())
	}
	stopwords.AddWords(cfg.ExtraStopwords...)
	stopwords.RemoveWords(cfg.KeepWords...)
	return filter.NewNormalizer(stopwords, cfg.FixedTokens), nil
}

func settingsFromConfig(cfg *Config) dashboard.Settings {
	return dashboard.Settings{
		Title:    cfg.Title,
		LogoPath: cfg.Logo,
		Chart:    charts.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
		WordCloud: charts.WordCloudOptions{
			Width:    cfg.WordCloud.Width,
			Height:   cfg.WordCloud.Height,
			MaxWords: cfg.WordCloud.MaxWords,
		},
	}
}

// loadConfig loads the YAML config file into a Config struct and fills in
// defaults. It does not validate required fields.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = defaultDelimiter
	}
	if cfg.FixedTokens == nil {
		cfg.FixedTokens = filter.DefaultFixedTokens
	}
	// Relative paths are resolved against the config file, not the working directory
	base := filepath.Dir(path)
	cfg.Dataset = resolvePath(base, cfg.Dataset)
	cfg.Logo = resolvePath(base, cfg.Logo)
	cfg.StopwordsFile = resolvePath(base, cfg.StopwordsFile)
	return &cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

func setupLogger(logDir, logLevel string) (*slog.Logger, *os.File, error) {
	// No default! logDir must be set by config and checked in main()
	if logDir == "" {
		return nil, nil, fmt.Errorf("logDir must be set in config; refusing to use a default")
	}
	level, err := parseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, err
	}
	logPath := filepath.Join(logDir, "dashboard.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	out := io.MultiWriter(logFile, os.Stderr)
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, logFile, nil
}
