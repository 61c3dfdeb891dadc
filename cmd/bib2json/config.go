package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"bib2json"
)

// Config holds all converter settings. Values come from the config file,
// then BIB2JSON_* environment variables, then flags, later sources winning.
type Config struct {
	Strict        bool   `mapstructure:"strict" yaml:"strict"`
	People        bool   `mapstructure:"people" yaml:"people"`
	IncludeBibtex bool   `mapstructure:"include_bibtex" yaml:"include_bibtex"`
	DropCrossref  bool   `mapstructure:"drop_crossref" yaml:"drop_crossref"`
	MaxHops       int    `mapstructure:"max_hops" yaml:"max_hops"`
	Sort          string `mapstructure:"sort" yaml:"sort"`
	Indent        string `mapstructure:"indent" yaml:"indent"`
	Output        string `mapstructure:"output" yaml:"output"`
}

func defaultConfig() Config {
	return Config{MaxHops: 1}
}

func (c Config) options() bib2json.Options {
	return bib2json.Options{
		Strict:                c.Strict,
		People:                c.People,
		IncludeBibtex:         c.IncludeBibtex,
		DropInheritanceFields: c.DropCrossref,
		MaxHops:               c.MaxHops,
	}
}

// bindFlags maps the dashed flag names onto the underscored viper keys.
func bindFlags(f *pflag.FlagSet) {
	viper.BindPFlag("strict", f.Lookup("strict"))
	viper.BindPFlag("people", f.Lookup("people"))
	viper.BindPFlag("include_bibtex", f.Lookup("include-bibtex"))
	viper.BindPFlag("drop_crossref", f.Lookup("drop-crossref"))
	viper.BindPFlag("max_hops", f.Lookup("max-hops"))
	viper.BindPFlag("sort", f.Lookup("sort"))
	viper.BindPFlag("indent", f.Lookup("indent"))
	viper.BindPFlag("output", f.Lookup("output"))
}

func initConfig() error {
	viper.SetEnvPrefix("BIB2JSON")
	viper.AutomaticEnv()

	if cfgPath != "" {
		viper.SetConfigFile(cfgPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config %q: %w", cfgPath, err)
		}
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.AddConfigPath(filepath.Join(home, ".config"))
	viper.SetConfigName("bib2json")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("unable to read config: %w", err)
		}
	}
	return nil
}

func loadConfig() (Config, error) {
	cfg := defaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bib2json configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file to ~/.config/bib2json.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path := filepath.Join(home, ".config", "bib2json.yaml")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			out, err := yaml.Marshal(defaultConfig())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	})
	return cmd
}
