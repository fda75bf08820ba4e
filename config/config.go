package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"voice-to-docs/internal/domain"
)

type Config struct {
	Mode         string           `yaml:"mode" env:"VOICE_TO_DOCS_MODE"`
	SystemPrompt string           `yaml:"system_prompt" env:"SYSTEM_PROMPT"`
	Audio        AudioConfig      `yaml:"audio"`
	Whisper      WhisperConfig    `yaml:"whisper"`
	Generation   GenerationConfig `yaml:"generation"`
	Anthropic    AnthropicConfig  `yaml:"anthropic"`
	Gemini       GeminiConfig     `yaml:"gemini"`
	OpenAI       OpenAIConfig     `yaml:"openai"`
	GitHub       GitHubConfig     `yaml:"github"`
	Log          LogConfig        `yaml:"log"`
}

type AudioConfig struct {
	// Device is kept as text: a non-numeric AUDIO_DEVICE falls back to
	// auto-detection instead of failing.
	Device  string `yaml:"device" env:"AUDIO_DEVICE"`
	TempDir string `yaml:"temp_dir" env:"VOICE_TO_DOCS_TMPDIR"`
}

type WhisperConfig struct {
	Backend string `yaml:"backend" env:"WHISPER_BACKEND"`
	Binary  string `yaml:"binary" env:"WHISPER_BIN"`
	Model   string `yaml:"model" env:"WHISPER_MODEL"`
	Threads int    `yaml:"threads" env:"WHISPER_THREADS"`
}

type GenerationConfig struct {
	Provider string `yaml:"provider" env:"GENERATION_PROVIDER"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model  string `yaml:"model" env:"ANTHROPIC_MODEL"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
}

type GitHubConfig struct {
	Token string `yaml:"token" env:"GITHUB_TOKEN"`
	Repo  string `yaml:"repo" env:"GITHUB_REPO"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	WhisperLocal  = "local"
	WhisperOpenAI = "openai"
)

// Overrides carries command-line values; they win over every other source.
type Overrides struct {
	APIKey      string
	Device      *int
	Mode        string
	GitHubToken string
	GitHubRepo  string
}

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Load reads the optional YAML file at path, then the environment, then
// fills defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) Apply(o Overrides) {
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.APIKey != "" {
		switch c.Generation.Provider {
		case ProviderGemini:
			c.Gemini.APIKey = o.APIKey
		default:
			c.Anthropic.APIKey = o.APIKey
		}
	}
	if o.GitHubToken != "" {
		c.GitHub.Token = o.GitHubToken
	}
	if o.GitHubRepo != "" {
		c.GitHub.Repo = o.GitHubRepo
	}
}

// Validate reports missing credentials and unknown enum values as
// *domain.ConfigError.
func (c *Config) Validate() error {
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return err
	}

	switch c.Generation.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missingCredential("ANTHROPIC_API_KEY")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missingCredential("GEMINI_API_KEY")
		}
	default:
		return &domain.ConfigError{Msg: fmt.Sprintf("unknown generation provider %q (supported: anthropic, gemini)", c.Generation.Provider)}
	}

	switch c.Whisper.Backend {
	case WhisperLocal:
	case WhisperOpenAI:
		if c.OpenAI.APIKey == "" {
			return missingCredential("OPENAI_API_KEY")
		}
	default:
		return &domain.ConfigError{Msg: fmt.Sprintf("unknown whisper backend %q (supported: local, openai)", c.Whisper.Backend)}
	}

	return nil
}

func missingCredential(name string) *domain.ConfigError {
	return &domain.ConfigError{
		Msg:        name + " environment variable not set",
		Credential: name,
	}
}

// TrackerEnabled reports whether both GitHub settings are present.
func (c *Config) TrackerEnabled() bool {
	return c.GitHub.Token != "" && c.GitHub.Repo != ""
}

func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = string(domain.ModeNormal)
	}
	if c.Whisper.Backend == "" {
		c.Whisper.Backend = WhisperLocal
	}
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = "whisper-cli"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "models/ggml-base.en.bin"
	}
	if c.Generation.Provider == "" {
		c.Generation.Provider = ProviderAnthropic
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-3-5-sonnet-20241022"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
