package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/config"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/patcher"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/platform"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/process"
	"github.com/ZebulonRouseFrantzich/dmcpatch/internal/steam"
)

// EnvDebug forces debug logging when set to any non-empty value.
const EnvDebug = "DMCPATCH_DEBUG"

// errReported marks a failure whose message was already printed.
var errReported = errors.New("reported")

// app holds the process-wide collaborators so tests can replace them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	launcher    patcher.Launcher
	sleep       func(time.Duration)
	interactive func() bool

	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
}

func (a *app) execute(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			printError(a.stderr, err)
		}
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dmcpatch [game-executable [game-args...]]",
		Short: "Patch Dota 2 to load DotaModdingCommunity mods",
		Long: `dmcpatch adds the DotaModdingCommunityMods search path to
gameinfo_branchspecific.gi and records the new checksum in dota.signatures.

Without arguments it patches interactively. With a game executable, as in the
Steam launch option "dmcpatch %command%", it patches and then starts the game
with the remaining arguments.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runRoot,
	}

	// Everything after the game executable belongs to the game.
	root.Flags().SetInterspersed(false)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is <user config dir>/dmcpatch/dmcpatch.lua)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(a.newStatusCmd())
	root.AddCommand(a.newVersionCmd())
	return root
}

// session is the per-invocation state shared by the subcommands.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *patcher.Engine
}

// setup loads the config and builds the logger and engine. An explicit
// --log-level wins over the config file's log_level.
func (a *app) setup(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	logger := setupLogger(a.logLevel, a.logFormat, a.stderr)

	parser := config.NewParser(platform.NewDetector()).WithLogger(logger)
	cfg, path, err := parser.Load(ctx, a.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %s", config.FormatError(err, os.Getenv(EnvDebug) != ""))
	}

	if cfg.LogLevel != "" && !cmd.Flags().Changed("log-level") {
		logger = setupLogger(cfg.LogLevel, a.logFormat, a.stderr)
	}
	logger = logger.With("run_id", uuid.NewString())
	logger.Debug("configuration loaded",
		"path", path,
		"steam_root", cfg.SteamRoot,
		"game_dir", cfg.GameDir,
		"process_names", cfg.ProcessNames,
	)

	engine := patcher.New(
		steam.NewLocator(cfg.SteamRoot, cfg.GameDir, logger),
		process.NewChecker(cfg.ProcessNames),
		a.launcher,
		logger,
	)
	return &session{cfg: cfg, logger: logger, engine: engine}, nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	s, err := a.setup(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return a.runLauncher(cmd.Context(), s, args[0], args[1:])
	}
	return a.runInteractive(cmd.Context(), s)
}

// runInteractive patches with the banner, the running-game check and the
// mods directory, then pauses so a double-clicked console stays readable.
func (a *app) runInteractive(ctx context.Context, s *session) error {
	tty := a.interactive()
	if tty {
		printBanner(a.stdout, version)
	}

	res, err := s.engine.Run(ctx, patcher.Options{CheckProcess: true, CreateModsDir: true})
	if err != nil {
		s.logger.Debug("patch failed", "error", err)
		printError(a.stderr, err)
		a.pause(tty, s.cfg.PauseSeconds)
		return errReported
	}

	printResult(a.stdout, res)
	a.pause(tty, s.cfg.PauseSeconds)
	return nil
}

// runLauncher patches without prompts, then starts the game. A game that
// fails to start is reported but does not fail the patcher.
func (a *app) runLauncher(ctx context.Context, s *session, exe string, args []string) error {
	if _, err := s.engine.Run(ctx, patcher.Options{}); err != nil {
		s.logger.Debug("patch failed", "error", err)
		return err
	}

	if err := s.engine.Launch(ctx, exe, args); err != nil {
		s.logger.Debug("game launch failed", "exe", exe, "error", err)
		fmt.Fprintf(a.stderr, "Failed to start game: %v\n", err)
	}
	return nil
}

func (a *app) pause(tty bool, seconds int) {
	if !tty || seconds <= 0 {
		return
	}
	fmt.Fprintln(a.stdout, "Window will close automatically...")
	a.sleep(time.Duration(seconds) * time.Second)
}
