package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/jackman/internal/version"
	"github.com/arthur-debert/jackman/pkg/config"
	"github.com/arthur-debert/jackman/pkg/errors"
	"github.com/arthur-debert/jackman/pkg/filesystem"
	"github.com/arthur-debert/jackman/pkg/hijack"
	"github.com/arthur-debert/jackman/pkg/launch"
	"github.com/arthur-debert/jackman/pkg/logging"
	"github.com/arthur-debert/jackman/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})

// App holds the state of one jackman invocation
type App struct {
	// ExitCode is the wrapped tool's exit status once it has run
	ExitCode int

	// WorkingDir overrides the process working directory when set
	WorkingDir string

	Launcher *launch.Launcher
	FS       types.FS

	cfg   *config.Config
	start time.Time
}

// NewApp creates an App using the OS filesystem and the process' streams
func NewApp() *App {
	return &App{
		Launcher: launch.New(),
		FS:       filesystem.NewOS(),
	}
}

// Execute runs jackman with args and returns the process exit code
func Execute(ctx context.Context, args []string) int {
	return NewApp().Execute(ctx, args)
}

// Execute runs the root command and maps the outcome to an exit code
func (a *App) Execute(ctx context.Context, args []string) int {
	rootCmd := a.NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errorStyle.Render(fmt.Sprintf(MsgErrorPrefix, err)))
		return 1
	}
	return a.ExitCode
}

// NewRootCmd creates and returns the root command
func (a *App) NewRootCmd() *cobra.Command {
	var (
		verbosity     int
		prefix        string
		rewriteRSP    bool
		verifyAliases bool
	)

	rootCmd := &cobra.Command{
		Use:     "jackman [flags] <tool> [tool arguments...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Get().Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.start = time.Now()

			wd, err := a.workingDir()
			if err != nil {
				return err
			}
			a.WorkingDir = wd

			overrides := map[string]interface{}{}
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				overrides["prefix"] = prefix
			}
			if flags.Changed("rewrite-rsp") {
				overrides["rewrite_rsp"] = rewriteRSP
			}
			if flags.Changed("verify-aliases") {
				overrides["verify_aliases"] = verifyAliases
			}

			cfg, err := config.Load(wd, overrides)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logFile, err := cfg.LogFilePath()
			if err != nil {
				return err
			}
			logging.SetupLogger(max(verbosity, cfg.Verbosity()), logFile)
			log.Debug().
				Str("command", cmd.Name()).
				Str("workingDir", wd).
				Str("config", cfg.Source).
				Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgErrNoTool)
			}
			return a.runWrap(cmd, args[0], args[1:])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Everything after the tool name belongs to the tool.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", MsgFlagPrefix)
	rootCmd.PersistentFlags().BoolVar(&rewriteRSP, "rewrite-rsp", false, MsgFlagRewriteRSP)
	rootCmd.PersistentFlags().BoolVar(&verifyAliases, "verify-aliases", false, MsgFlagVerifyAliases)

	rootCmd.AddCommand(a.newFarmCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// workingDir returns the directory the tool runs in, with symlinks
// resolved so alias targets are canonical
func (a *App) workingDir() (string, error) {
	wd := a.WorkingDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", fmt.Errorf(MsgErrWorkingDir, err)
		}
	}
	resolved, err := filepath.EvalSymlinks(wd)
	if err != nil {
		return "", fmt.Errorf(MsgErrWorkingDir, err)
	}
	return filepath.Abs(resolved)
}

func (a *App) runWrap(cmd *cobra.Command, tool string, args []string) error {
	logger := logging.GetLogger("cli.wrap")

	h, err := hijack.New(a.FS, a.cfg.Options(tool, a.WorkingDir))
	if err != nil {
		return err
	}

	rewritten, err := h.Rewrite(args)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		logging.LogRewrite(cmd.ErrOrStderr(), append([]string{tool}, rewritten...))
	}
	if a.cfg.DebugPerf {
		logging.LogPerf(cmd.ErrOrStderr(), a.start)
	}

	logger.Debug().
		Str("tool", tool).
		Int("args", len(args)).
		Int("rewritten", len(rewritten)).
		Msg("Launching tool")

	if a.Launcher.Dir == "" {
		a.Launcher.Dir = a.WorkingDir
	}
	code, err := a.Launcher.Run(cmd.Context(), tool, rewritten)
	if err != nil {
		return err
	}
	a.ExitCode = code
	return nil
}
