// Package config loads portdocs configuration from TOML config files,
// PORTDOCS_* environment variables and defaults, and carries the merge
// policy that gates which documentation fields are ported.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Policy is the fixed set of toggles controlling a port run. Every field
// kind is independently gated; text is only ever written into empty
// target fields regardless of these settings.
type Policy struct {
	TypeSummaries   bool `mapstructure:"type_summaries"`
	MemberSummaries bool `mapstructure:"member_summaries"`
	TypeRemarks     bool `mapstructure:"type_remarks"`
	MemberRemarks   bool `mapstructure:"member_remarks"`
	Params          bool `mapstructure:"params"`
	TypeParams      bool `mapstructure:"type_params"`
	Returns         bool `mapstructure:"returns"`
	PropertyValues  bool `mapstructure:"property_values"`

	// ExceptionsNew creates exception entries for crefs the target does
	// not list yet; ExceptionsExisting appends to entries it does.
	ExceptionsNew      bool `mapstructure:"exceptions_new"`
	ExceptionsExisting bool `mapstructure:"exceptions_existing"`

	// ExceptionCollisionPercent is the word-overlap percentage at or
	// above which appending to an existing exception entry is skipped as
	// a near-duplicate.
	ExceptionCollisionPercent int `mapstructure:"exception_collision_percent"`

	// MarkdownRemarks emits remarks as markdown prose wrapped in a raw
	// format block instead of structured XML.
	MarkdownRemarks bool `mapstructure:"markdown_remarks"`

	// PreserveInheritDoc records inherit-doc markers on the target
	// verbatim instead of flattening them to resolved text.
	PreserveInheritDoc bool `mapstructure:"preserve_inheritdoc"`

	// SkipInterfaceImplementations disables the explicit-interface
	// fallback entirely; SkipInterfaceRemarks keeps the fallback but
	// omits the interfaced member's own remarks from the synthesized
	// remarks text.
	SkipInterfaceImplementations bool `mapstructure:"skip_interface_implementations"`
	SkipInterfaceRemarks         bool `mapstructure:"skip_interface_remarks"`

	// DisablePrompts records parameter-name mismatches as problems
	// instead of asking the operator to resolve them.
	DisablePrompts bool `mapstructure:"disable_prompts"`

	IncludeAssemblies []string `mapstructure:"include_assemblies"`
	ExcludeAssemblies []string `mapstructure:"exclude_assemblies"`
}

// DefaultPolicy enables every port toggle except existing-exception
// appends, markdown remarks and marker preservation, matching the common
// whole-corpus porting run.
func DefaultPolicy() Policy {
	return Policy{
		TypeSummaries:             true,
		MemberSummaries:           true,
		TypeRemarks:               true,
		MemberRemarks:             true,
		Params:                    true,
		TypeParams:                true,
		Returns:                   true,
		PropertyValues:            true,
		ExceptionsNew:             true,
		ExceptionsExisting:        false,
		ExceptionCollisionPercent: 70,
	}
}

type Config struct {
	Policy Policy `mapstructure:"policy"`
}

// cacheBase returns the base cache directory for portdocs.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/portdocs as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "portdocs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "portdocs")
	}
	return filepath.Join(os.TempDir(), "portdocs")
}

// CorpusCacheDir returns the directory holding compressed parsed corpora.
func CorpusCacheDir() string {
	return filepath.Join(cacheBase(), "corpus")
}

// HistoryDBPath returns the path to the run-history database file.
func HistoryDBPath() string {
	return filepath.Join(cacheBase(), "history.db")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "portdocs"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "portdocs"))
	}

	def := DefaultPolicy()
	viper.SetDefault("policy.type_summaries", def.TypeSummaries)
	viper.SetDefault("policy.member_summaries", def.MemberSummaries)
	viper.SetDefault("policy.type_remarks", def.TypeRemarks)
	viper.SetDefault("policy.member_remarks", def.MemberRemarks)
	viper.SetDefault("policy.params", def.Params)
	viper.SetDefault("policy.type_params", def.TypeParams)
	viper.SetDefault("policy.returns", def.Returns)
	viper.SetDefault("policy.property_values", def.PropertyValues)
	viper.SetDefault("policy.exceptions_new", def.ExceptionsNew)
	viper.SetDefault("policy.exceptions_existing", def.ExceptionsExisting)
	viper.SetDefault("policy.exception_collision_percent", def.ExceptionCollisionPercent)

	viper.SetEnvPrefix("PORTDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		// environment overrides arrive as strings
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
