package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/configutil"
	configlibsql "headlinewatch/lib/configutil/libsql"
	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/report"
	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/serviceutil"
	"headlinewatch/lib/translate"

	"github.com/mazen160/go-random"
)

type ScraperConfig struct {
	SectionUrl string `json:"section_url"`
	Count      int    `json:"count"`
	Headless   bool   `json:"headless"`
	Locale     string `json:"locale"`
}

type TranslatorConfig struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Source  string `json:"source"`
	Target  string `json:"target"`
}

type CloudConfig struct {
	Username  string `json:"username"`
	AccessKey string `json:"access_key"`
	Endpoint  string `json:"endpoint"`
	Project   string `json:"project"`
}

type Config struct {
	Scraper    ScraperConfig       `json:"scraper"`
	Translator TranslatorConfig    `json:"translator"`
	Cloud      CloudConfig         `json:"browserstack"`
	Output     string              `json:"output"`
	Archive    configlibsql.Struct `json:"archive"`
	Report     report.Config       `json:"report"`
}

// loadConfig reads config.json5 from the working directory. A missing
// file is fine, secrets can come from the environment alone.
func loadConfig() Config {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		config.Translator.ApiKey = v
	}
	if v := os.Getenv("BROWSERSTACK_USERNAME"); v != "" {
		config.Cloud.Username = v
	}
	if v := os.Getenv("BROWSERSTACK_ACCESS_KEY"); v != "" {
		config.Cloud.AccessKey = v
	}

	if config.Output == "" {
		config.Output = "output"
	}
	if config.Scraper.Locale == "" {
		config.Scraper.Locale = "es-ES"
	}
	return config
}

func (c Config) scraperOptions() elpais.Options {
	return elpais.Options{
		SectionURL: c.Scraper.SectionUrl,
		Count:      c.Scraper.Count,
	}
}

// translator returns nil when no api key is configured, the pipeline
// then keeps the spanish headers.
func (c Config) translator() *translate.Client {
	if c.Translator.ApiKey == "" {
		slog.Warn("no rapidapi key configured, headers will not be translated")
		return nil
	}
	client, err := translate.NewClient(translate.ClientOptions{
		BaseUrl: c.Translator.BaseUrl,
		Key:     c.Translator.ApiKey,
		Source:  c.Translator.Source,
		Target:  c.Translator.Target,
	})
	if err != nil {
		serviceutil.Fatal("failed to create translator client", err)
	}
	return client
}

func (c Config) pipeline() pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Scraper:    c.scraperOptions(),
		Translator: c.translator(),
	})
}

func (c Config) credentials() browserstack.Credentials {
	return browserstack.Credentials{
		Username:  c.Cloud.Username,
		AccessKey: c.Cloud.AccessKey,
	}
}

// newBuildName generates a unique build id for the BrowserStack
// dashboard when none was given.
func newBuildName() string {
	suffix, err := random.String(8)
	if err != nil {
		serviceutil.Fatal("failed to generate build name", err)
	}
	return fmt.Sprintf("headlinewatch-%s", suffix)
}
