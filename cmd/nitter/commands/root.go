package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	nitter "github.com/anatolykoptev/go-nitter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailed    = 1
	ExitUsage     = 2
	ExitProtected = 3
	ExitSuspended = 4
	ExitNotFound  = 5
)

// app carries flag values and the merged settings for one invocation.
type app struct {
	configPath string
	flags      settings
	cfg        settings
}

func newRootCmd() *cobra.Command {
	a := &app{flags: defaultSettings()}

	root := &cobra.Command{
		Use:               "nitter",
		Short:             "nitter reads tweets from a Nitter instance and prints them as JSON lines.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	fs := root.PersistentFlags()
	fs.StringVar(&a.configPath, "config", "", "YAML config file; flags override its values")
	a.bindFlags(fs)

	root.AddCommand(a.timelineCommands()...)
	root.AddCommand(a.tweetCommand())
	return root
}

func (a *app) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.flags.Instance, "instance", a.flags.Instance, "Nitter instance base URL")
	fs.IntVarP(&a.flags.Limit, "limit", "l", a.flags.Limit, "stop after this many tweets (0 = no limit)")
	fs.Uint64VarP(&a.flags.MinID, "min-id", "m", a.flags.MinID, "stop at the first tweet with a lower id (0 = off)")
	fs.BoolVar(&a.flags.ReorderPinned, "reorder-pinned", a.flags.ReorderPinned, "move the pinned tweet to its chronological position")
	fs.BoolVar(&a.flags.SkipRetweets, "skip-retweets", a.flags.SkipRetweets, "drop retweets")
	fs.StringVar(&a.flags.Proxy, "proxy", a.flags.Proxy, "proxy URL for outgoing requests")
	fs.BoolVar(&a.flags.Stealth, "stealth", a.flags.Stealth, "use the browser-fingerprinted TLS transport")
	fs.BoolVar(&a.flags.Jitter, "jitter", a.flags.Jitter, "random delay before each stealth request")
	fs.IntVar(&a.flags.Profile, "profile", a.flags.Profile, "built-in browser profile index for --stealth")
	fs.StringVar(&a.flags.UserAgent, "user-agent", a.flags.UserAgent, "override the User-Agent header")
	fs.DurationVar(&a.flags.Timeout, "timeout", a.flags.Timeout, "per-request timeout")
	fs.IntVar(&a.flags.MaxAttempts, "max-attempts", a.flags.MaxAttempts, "tries per page when rate limited")
	fs.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "debug, info, warn or error")
}

// setup merges the config file under the flags and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadSettings(a.configPath)
	if err != nil {
		return &usageError{err: err}
	}
	a.cfg = fileCfg.merge(cmd.Flags(), a.flags)

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.cfg.LogLevel)); err != nil {
		return &usageError{err: fmt.Errorf("log level %q: %w", a.cfg.LogLevel, err)}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if a.cfg.Limit < 0 {
		return &usageError{err: fmt.Errorf("limit must not be negative, got %d", a.cfg.Limit)}
	}
	return nil
}

func (a *app) client() (*nitter.Client, error) {
	if a.cfg.Instance == "" {
		return nil, &usageError{err: errors.New("an instance is required: pass --instance or set instance in the config file")}
	}
	return nitter.NewClient(a.cfg.clientConfig())
}

// ExecuteContext runs the command line in os.Args and returns the exit code.
func ExecuteContext(ctx context.Context) int {
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "nitter:", err)
	}
	return exitCode(err)
}

// usageError marks bad flags, arguments or configuration.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// statusError reports a stream that did not end normally.
type statusError struct {
	status nitter.Status
	err    error
}

func (e *statusError) Error() string {
	if e.err == nil {
		return e.status.String()
	}
	return e.status.String() + ": " + e.err.Error()
}

func (e *statusError) Unwrap() error { return e.err }

func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	var se *statusError
	if errors.As(err, &se) {
		return statusExitCode(se.status)
	}
	return ExitFailed
}

func statusExitCode(s nitter.Status) int {
	switch s {
	case nitter.StatusEnded:
		return ExitOK
	case nitter.StatusProtected:
		return ExitProtected
	case nitter.StatusSuspended:
		return ExitSuspended
	case nitter.StatusNotFound:
		return ExitNotFound
	}
	return ExitFailed
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
