package main

import (
	"fmt"
	"strings"

	"github.com/fxrazen/fxsema/check"
	"github.com/fxrazen/fxsema/compile"
	"github.com/fxrazen/fxsema/files"
	"github.com/fxrazen/fxsema/semantics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// opt is a single flag, also settable through an FXSEMA_* environment
// variable.
type opt struct {
	destP interface{}
	flag  string
	dflt  interface{}
	desc  string
}

// options is shared by every subcommand.
type options struct {
	Verbose   bool
	Project   string
	Config    string
	MaxPasses int
}

func (o *options) opts() []opt {
	return []opt{
		{&o.Verbose, "verbose", false, "log at debug level"},
		{&o.Project, "project", "", "project directory holding .env and fxsema.yaml"},
		{&o.Config, "config", "", "configuration constants file (yaml or toml)"},
		{&o.MaxPasses, "max-passes", compile.DefaultMaxPasses, "retry limit for deferred verification"},
	}
}

func newViper(prefix string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.AutomaticEnv()
	// FXSEMA_MAX_PASSES sets --max-passes
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return v
}

// bindOptions registers opts as persistent flags of cmd. Environment
// values become the flag defaults.
func bindOptions(v *viper.Viper, cmd *cobra.Command, opts []opt) {
	flags := cmd.PersistentFlags()
	for _, o := range opts {
		switch destP := o.destP.(type) {
		case *string:
			flags.StringVar(destP, o.flag, o.dflt.(string), o.desc)
			mustBindPFlag(v, cmd, o.flag)
			*destP = v.GetString(o.flag)
		case *int:
			flags.IntVar(destP, o.flag, o.dflt.(int), o.desc)
			mustBindPFlag(v, cmd, o.flag)
			*destP = v.GetInt(o.flag)
		case *bool:
			flags.BoolVar(destP, o.flag, o.dflt.(bool), o.desc)
			mustBindPFlag(v, cmd, o.flag)
			*destP = v.GetBool(o.flag)
		default:
			panic(fmt.Errorf("unknown destination type %T", o.destP))
		}
	}
}

func mustBindPFlag(v *viper.Viper, cmd *cobra.Command, key string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)); err != nil {
		panic(err)
	}
}

// ========================

func (o *options) newLogger() (*zap.Logger, error) {
	if o.Verbose {
		return zap.NewDevelopmentConfig().Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// configPath is --config, or the project's fxsema.yaml when there is one.
func (o *options) configPath() string {
	if o.Config != "" || o.Project == "" {
		return o.Config
	}
	path, err := files.NewFinder(o.Project).FindConfig()
	if err != nil {
		return ""
	}
	return path
}

func (o *options) newUnit(log *zap.Logger) (*compile.Unit, error) {
	var constants map[string]string
	if path := o.configPath(); path != "" {
		var err error
		if constants, err = files.LoadConfigConstants(path); err != nil {
			return nil, err
		}
		log.Debug("configuration constants loaded", zap.String("path", path), zap.Int("count", len(constants)))
	}

	host := semantics.NewHost(semantics.Options{
		ProjectPath:     o.Project,
		ConfigConstants: constants,
		Logger:          log,
	})
	check.DeclareBuiltins(host)

	unit := compile.NewUnit(host)
	unit.MaxPasses = o.MaxPasses
	return unit, nil
}
