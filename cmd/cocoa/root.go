package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cocoabridge "github.com/wippyai/cocoa-bridge"
	"github.com/wippyai/cocoa-bridge/appkit"
	"github.com/wippyai/cocoa-bridge/engine"
	"github.com/wippyai/cocoa-bridge/foundation"
	"github.com/wippyai/cocoa-bridge/loader"
	"github.com/wippyai/cocoa-bridge/objc"
	"github.com/wippyai/cocoa-bridge/objctest"
)

// app carries global flag state and the lazily opened session.
type app struct {
	v       *viper.Viper
	stderr  io.Writer
	cfg     cocoabridge.Config
	session *cocoabridge.Session
	fakeRT  *objctest.Runtime
	logger  *zap.Logger
	cfgFile string
	verbose bool
	fake    bool
}

// run executes the command line and closes any session it opened.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	root, a := newRootCmd(stdout, stderr)
	root.SetIn(stdin)
	root.SetArgs(args)
	defer func() {
		err = multierr.Append(err, a.close())
	}()
	return root.Execute()
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{v: viper.New(), stderr: stderr}

	root := &cobra.Command{
		Use:   "cocoa",
		Short: "Call into the Objective-C runtime from the shell",
		Long: `cocoa talks to the Objective-C runtime through a dynamic bridge. It
launches applications, resolves file URLs and reads the process
environment through Foundation, and prints results as Alfred script
filter XML.

With --fake every command runs against an in-memory runtime, which is
useful off macOS and in scripts that only need the XML output.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.setupLogging()
			return nil
		},
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.cocoa-bridge.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&a.fake, "fake", false, "use the in-memory runtime instead of the system libraries")

	root.AddCommand(
		newLaunchCmd(a),
		newEnvCmd(a),
		newFileURLCmd(a),
		newRenderCmd(a),
		newPreviewCmd(a),
		newVersionCmd(a),
	)
	return root, a
}

// initConfig loads configuration from the config file and environment.
func (a *app) initConfig() error {
	v := a.v
	defaults := cocoabridge.DefaultConfig()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("render.indent", defaults.Render.Indent)
	v.SetDefault("libraries.search_paths", []string{})
	v.SetDefault("libraries.objc", defaults.Libraries.ObjC)
	v.SetDefault("libraries.foundation", defaults.Libraries.Foundation)
	v.SetDefault("libraries.appkit", defaults.Libraries.AppKit)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".cocoa-bridge")
	}

	v.SetEnvPrefix("COCOA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (a *app) setupLogging() {
	level := zapcore.WarnLevel
	if err := level.Set(a.cfg.Log.Level); err != nil {
		level = zapcore.WarnLevel
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(a.stderr), level)
	logger := zap.New(core)
	if a.verbose {
		logger = logger.WithOptions(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	a.logger = logger

	objc.SetLogger(logger.Named("objc"))
	foundation.SetLogger(logger.Named("foundation"))
	appkit.SetLogger(logger.Named("appkit"))
	engine.SetLogger(logger.Named("engine"))
	loader.SetLogger(logger.Named("loader"))

	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("file", used))
	}
}

// open returns the session, opening it on first use.
func (a *app) open() (*cocoabridge.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	if a.fake {
		rt := objctest.New()
		rt.SetEnvironment(environ())
		s, err := cocoabridge.NewSession(rt)
		if err != nil {
			return nil, err
		}
		a.fakeRT, a.session = rt, s
		return s, nil
	}
	s, err := cocoabridge.Open(a.cfg)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.session == nil {
		return nil
	}
	err := a.session.Close()
	a.session = nil
	return err
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			env[k] = v
		}
	}
	return env
}
