package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prepforge/interviewharvest/internal/app"
	"github.com/prepforge/interviewharvest/internal/review"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		url           string
		inputPath     string
		mode          string
		maxPages      int
		pageDelay     time.Duration
		settleDelay   time.Duration
		static        bool
		headed        bool
		llmBaseURL    string
		llmModel      string
		llmKey        string
		chunkSize     int
		maxChunks     int
		chunkDelay    time.Duration
		outputDir     string
		scrapeOut     string
		outputJSON    string
		outputText    string
		outputPDF     string
		enablePDF     bool
		caseSensitive bool
		configPath    string
		verbose       bool
	)

	flag.StringVar(&url, "url", "", "Company interview listing URL to scrape")
	flag.StringVar(&inputPath, "input", "", "Path to a saved scrape result JSON to re-analyze instead of scraping")
	flag.StringVar(&mode, "mode", app.ModeRegex, "Question extraction mode: 'regex' or 'ai'")
	flag.IntVar(&maxPages, "max.pages", 10, "Maximum number of listing pages to scrape")
	flag.DurationVar(&pageDelay, "delay.page", 3*time.Second, "Delay between listing pages")
	flag.DurationVar(&settleDelay, "delay.settle", 2*time.Second, "Wait after page loads and clicks")
	flag.BoolVar(&static, "static", false, "Fetch pages over plain HTTP instead of a browser")
	flag.BoolVar(&headed, "headed", false, "Run the browser with a visible window")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for ai mode")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.IntVar(&chunkSize, "chunk.size", 25, "Interviews per inference chunk")
	flag.IntVar(&maxChunks, "chunk.max", 0, "Maximum chunks to process (0 = all)")
	flag.DurationVar(&chunkDelay, "chunk.delay", time.Second, "Pause between inference chunks")
	flag.StringVar(&outputDir, "out.dir", "", "Directory for timestamped default outputs")
	flag.StringVar(&scrapeOut, "out.scrape", "", "Path for the raw scrape result JSON")
	flag.StringVar(&outputJSON, "out.json", "", "Path for the analysis JSON")
	flag.StringVar(&outputText, "out.text", "", "Path for the readable report")
	flag.StringVar(&outputPDF, "out.pdf", "", "Path for the study sheet PDF")
	flag.BoolVar(&enablePDF, "enable.pdf", false, "Also write the study sheet PDF")
	flag.BoolVar(&caseSensitive, "case-sensitive", false, "Match extraction patterns case-sensitively")
	flag.StringVar(&configPath, "config", os.Getenv("HARVEST_CONFIG"), "Path to YAML or JSON config file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:               url,
		InputPath:         inputPath,
		Mode:              mode,
		MaxPages:          maxPages,
		DelayBetweenPages: pageDelay,
		SettleDelay:       settleDelay,
		Static:            static,
		Headless:          !headed,
		LLMBaseURL:        llmBaseURL,
		LLMModel:          llmModel,
		LLMAPIKey:         llmKey,
		ChunkSize:         chunkSize,
		MaxChunks:         maxChunks,
		ChunkDelay:        chunkDelay,
		OutputDir:         outputDir,
		ScrapeOut:         scrapeOut,
		OutputJSON:        outputJSON,
		OutputText:        outputText,
		OutputPDF:         outputPDF,
		EnablePDF:         enablePDF,
		CaseSensitive:     caseSensitive,
		Verbose:           verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when the run completed but produced nothing
		// usable, 1 for everything else.
		if errors.Is(err, review.ErrNoInterviews) || errors.Is(err, app.ErrNoQuestions) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
