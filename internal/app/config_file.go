package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/prepforge/interviewharvest/internal/scrape"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag namespace.
type FileConfig struct {
	URL   string `yaml:"url" json:"url"`
	Input string `yaml:"input" json:"input"`
	Mode  string `yaml:"mode" json:"mode"`

	Scrape struct {
		MaxPages    int           `yaml:"maxPages" json:"maxPages"`
		PageDelay   time.Duration `yaml:"pageDelay" json:"pageDelay"`
		SettleDelay time.Duration `yaml:"settleDelay" json:"settleDelay"`
		Static      bool          `yaml:"static" json:"static"`
		Headed      bool          `yaml:"headed" json:"headed"`
	} `yaml:"scrape" json:"scrape"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Chunk struct {
		Size  int           `yaml:"size" json:"size"`
		Max   int           `yaml:"max" json:"max"`
		Delay time.Duration `yaml:"delay" json:"delay"`
	} `yaml:"chunk" json:"chunk"`

	Output struct {
		Dir       string `yaml:"dir" json:"dir"`
		Scrape    string `yaml:"scrape" json:"scrape"`
		JSON      string `yaml:"json" json:"json"`
		Text      string `yaml:"text" json:"text"`
		PDF       string `yaml:"pdf" json:"pdf"`
		EnablePDF bool   `yaml:"enablePDF" json:"enablePDF"`
	} `yaml:"output" json:"output"`

	CaseSensitive bool `yaml:"caseSensitive" json:"caseSensitive"`
	Verbose       bool `yaml:"verbose" json:"verbose"`

	// Selectors override the built-in table per field when the source
	// markup changes. Omitted fields keep their defaults.
	Selectors *scrape.Selectors `yaml:"selectors" json:"selectors"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset or still at their flag default. Flags should
// already have been parsed; this lets file config supply defaults while
// preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	const (
		modeDefault        = ModeRegex
		maxPagesDefault    = 10
		pageDelayDefault   = 3 * time.Second
		settleDelayDefault = 2 * time.Second
		chunkSizeDefault   = 25
		chunkDelayDefault  = time.Second
	)

	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if (cfg.Mode == "" || cfg.Mode == modeDefault) && fc.Mode != "" {
		cfg.Mode = fc.Mode
	}

	if (cfg.MaxPages == 0 || cfg.MaxPages == maxPagesDefault) && fc.Scrape.MaxPages > 0 {
		cfg.MaxPages = fc.Scrape.MaxPages
	}
	if (cfg.DelayBetweenPages == 0 || cfg.DelayBetweenPages == pageDelayDefault) && fc.Scrape.PageDelay > 0 {
		cfg.DelayBetweenPages = fc.Scrape.PageDelay
	}
	if (cfg.SettleDelay == 0 || cfg.SettleDelay == settleDelayDefault) && fc.Scrape.SettleDelay > 0 {
		cfg.SettleDelay = fc.Scrape.SettleDelay
	}
	if !cfg.Static && fc.Scrape.Static {
		cfg.Static = true
	}
	if cfg.Headless && fc.Scrape.Headed {
		cfg.Headless = false
	}

	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}

	if (cfg.ChunkSize == 0 || cfg.ChunkSize == chunkSizeDefault) && fc.Chunk.Size > 0 {
		cfg.ChunkSize = fc.Chunk.Size
	}
	if cfg.MaxChunks == 0 && fc.Chunk.Max > 0 {
		cfg.MaxChunks = fc.Chunk.Max
	}
	if (cfg.ChunkDelay == 0 || cfg.ChunkDelay == chunkDelayDefault) && fc.Chunk.Delay > 0 {
		cfg.ChunkDelay = fc.Chunk.Delay
	}

	if cfg.OutputDir == "" && fc.Output.Dir != "" {
		cfg.OutputDir = fc.Output.Dir
	}
	if cfg.ScrapeOut == "" && fc.Output.Scrape != "" {
		cfg.ScrapeOut = fc.Output.Scrape
	}
	if cfg.OutputJSON == "" && fc.Output.JSON != "" {
		cfg.OutputJSON = fc.Output.JSON
	}
	if cfg.OutputText == "" && fc.Output.Text != "" {
		cfg.OutputText = fc.Output.Text
	}
	if cfg.OutputPDF == "" && fc.Output.PDF != "" {
		cfg.OutputPDF = fc.Output.PDF
	}
	if !cfg.EnablePDF && fc.Output.EnablePDF {
		cfg.EnablePDF = true
	}

	if !cfg.CaseSensitive && fc.CaseSensitive {
		cfg.CaseSensitive = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.Selectors == nil && fc.Selectors != nil {
		cfg.Selectors = fc.Selectors
	}
}
