package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// Duration makes time.Duration usable in yaml fields ("500ms", "24h").
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

type (
	TemplateFieldName string

	CredentialsConfig struct {
		User     string       `yaml:"user,omitempty"`
		Password SecretString `yaml:"password,omitempty"`
	}

	CacheConfig struct {
		Enable bool     `yaml:"enable"`
		Path   string   `yaml:"path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required_unless=Enable false,omitempty,filepath"`
		TTL    Duration `yaml:"ttl" validate:"gte=0"`
	}

	ClientConfig struct {
		BaseURL     string            `yaml:"base_url" validate:"omitempty,url"`
		UserAgent   string            `yaml:"user_agent"`
		Retries     int               `yaml:"retries" validate:"min=0,max=10"`
		MinInterval Duration          `yaml:"min_interval" validate:"gte=0"`
		Credentials CredentialsConfig `yaml:"credentials"`
		Cache       CacheConfig       `yaml:"cache"`
	}

	StyleConfig struct {
		BaseFontSize    int    `yaml:"base_font_size" validate:"min=6,max=72"`
		FontDesign      string `yaml:"font_design" validate:"oneof=default serif sans-serif monospace"`
		TextColor       string `yaml:"text_color"`
		BackgroundColor string `yaml:"background_color"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string      `yaml:"output_name_template"`
		FileNameTransliterate bool        `yaml:"file_name_transliterate"`
		TitleTemplate         string      `yaml:"title_template"`
		IncludeSummary        bool        `yaml:"include_summary"`
		IncludeNotes          bool        `yaml:"include_notes"`
		ApplyWorkSkin         bool        `yaml:"apply_work_skin"`
		Style                 StyleConfig `yaml:"style"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Client    ClientConfig   `yaml:"client"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	TitleTemplateFieldName      TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(TitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
