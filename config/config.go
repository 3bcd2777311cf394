package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	LexiconPath    string
	DefaultLexicon string
	Threads        int
	Debug          bool
}

// Load parses flags and environment overrides (CROSSFILL_LEXICON_PATH and
// friends). Flags win over environment, environment wins over defaults.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("crossfill", pflag.ContinueOnError)
	fs.String("lexicon-path", "./data/lexica", "directory holding word list files")
	fs.String("default-lexicon", "wordlist", "the default word list to use")
	fs.Int("threads", 1, "number of search workers; below 2 solves sequentially")
	fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix("crossfill")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c.LexiconPath = v.GetString("lexicon-path")
	c.DefaultLexicon = v.GetString("default-lexicon")
	c.Threads = v.GetInt("threads")
	c.Debug = v.GetBool("debug")
	return nil
}

func DefaultConfig() *Config {
	c := &Config{}
	c.Load(nil)
	return c
}
