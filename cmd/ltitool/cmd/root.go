// Package cmd implements the ltitool command tree.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZOwl/signal-processing/dsp/lti/residue"
	"github.com/ZOwl/signal-processing/internal/sysfile"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes environment variables that override flags, e.g.
// LTITOOL_TOLERANCE.
const EnvPrefix = "LTITOOL"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v   *viper.Viper
	log logr.Logger
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd returns a fresh command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logr.Discard()}

	var cfgFile string

	root := &cobra.Command{
		Use:   "ltitool",
		Short: "Inspect and transform LTI systems",
		Long: `ltitool reads transfer functions (tf), zero-pole-gain systems (zpk) and
residue expansions (rpk) from YAML, TOML or JSON files.

Commands:
  residue   - partial-fraction expansion (domain from the file)
  residuez  - partial-fraction expansion in powers of z^-1
  tf, zpk   - convert a system description
  sftrans   - map a lowpass prototype to a lowpass/highpass/band target
  butter    - design a Butterworth filter
  freqz     - frequency response of a discrete system
  impulse   - impulse response of a discrete system

Flags can also be set in a config file (--config, or ./ltitool.yaml) or
through LTITOOL_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.BoolP("verbose", "v", false, "log diagnostics to stderr")
	flags.StringP("output", "o", "table", "output format: table, yaml, toml or json")
	flags.Float64("tolerance", residue.DefaultTolerance, "pole clustering tolerance")

	root.AddCommand(
		a.residueCmd(),
		a.residuezCmd(),
		a.tfCmd(),
		a.zpkCmd(),
		a.sftransCmd(),
		a.butterCmd(),
		a.freqzCmd(),
		a.impulseCmd(),
		versionCmd(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command, cfgFile string) error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		a.v.SetConfigName("ltitool")
		a.v.AddConfigPath(".")
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	level := zapcore.InfoLevel
	if a.v.GetBool("verbose") {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)
	a.log = zapr.NewLogger(zap.New(core)).WithName("ltitool")

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.V(1).Info("using config file", "path", used)
	}

	return nil
}

func (a *app) residueOptions() []residue.Option {
	return []residue.Option{
		residue.WithTolerance(a.v.GetFloat64("tolerance")),
		residue.WithLogger(a.log.WithName("residue")),
	}
}

func (a *app) load(path string) (sysfile.Document, error) {
	doc, err := sysfile.Load(path)
	if err != nil {
		return sysfile.Document{}, err
	}
	a.log.V(1).Info("loaded system", "path", path, "kind", doc.Kind, "domain", doc.Domain)
	return doc, nil
}
