package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"anki-creator/internal/adapter/primary/web"
	"anki-creator/internal/adapter/secondary/hotkey"
	"anki-creator/internal/adapter/secondary/keystroke"
	"anki-creator/internal/adapter/secondary/repository"
	"anki-creator/internal/config"
	"anki-creator/internal/domain"
	"anki-creator/internal/logging"
	"anki-creator/internal/usecase"
)

var (
	configHome string
	verbosity  int
)

// NewRootCmd creates the root CLI command.
// This is the primary adapter that translates CLI inputs to use case calls.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "anki-creator",
		Short:         "Native backend for the Anki Creator desktop shell",
		Long:          "Settings store, global shortcuts and copy-keystroke bridge for the Anki Creator UI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configHome, "config-home", "", "directory to keep config.toml in (default: OS config dir, or $"+config.HomeEnv+")")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log detail (-v, -vv, ... up to 4)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logging.SetVerbosity(verbosity)
	}

	cmd.AddCommand(
		newServeCmd(),
		newConfigCmd(),
		newDirsCmd(),
		newCopyCmd(),
		newShortcutCmd(),
		newShellCmd(),
	)

	return cmd
}

// newLocator honours --config-home the same way the HomeEnv override works.
func newLocator() (*config.Locator, error) {
	if strings.TrimSpace(configHome) == "" {
		return config.SystemLocator(), nil
	}
	dir, err := filepath.Abs(configHome)
	if err != nil {
		return nil, &domain.PathResolutionError{Op: "--config-home", Err: err}
	}
	return config.NewLocator(func() (config.Dirs, error) {
		return config.Dirs{Config: dir, Data: filepath.Join(dir, "data")}, nil
	})
}

type wiring struct {
	uc        usecase.AppUseCase
	hub       *web.Hub
	registrar domain.ShortcutRegistrar
}

// wire assembles the use case. With systemHotkeys false (or when the OS
// facility is unavailable) shortcuts live only in memory.
func wire(systemHotkeys bool) (wiring, error) {
	locator, err := newLocator()
	if err != nil {
		return wiring{}, err
	}
	repo, err := repository.NewFileRepository(locator)
	if err != nil {
		return wiring{}, err
	}

	var registrar domain.ShortcutRegistrar = hotkey.NewMemoryRegistrar()
	if systemHotkeys {
		sys, err := hotkey.NewSystemRegistrar()
		if err != nil {
			logging.Warnf("global shortcuts unavailable, using in-memory registrar: %v", err)
		} else {
			registrar = sys
		}
	}

	hub := web.NewHub()
	uc, err := usecase.NewAppUseCase(usecase.Deps{
		Repo:      repo,
		Registrar: registrar,
		Injector:  keystroke.NewSystemInjector(),
		Emitter:   hub,
	})
	if err != nil {
		return wiring{}, err
	}
	return wiring{uc: uc, hub: hub, registrar: registrar}, nil
}

func newServeCmd() *cobra.Command {
	var (
		addr       string
		shortcuts  []string
		noDefaults bool
		headless   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the UI bridge: HTTP commands, event stream and global shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := parseBindings(shortcuts)
			if err != nil {
				return err
			}
			if !noDefaults {
				bindings = append(domain.DefaultBindings(), bindings...)
			}

			w, err := wire(!headless)
			if err != nil {
				return err
			}
			if err := w.uc.Bootstrap(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: settings not loaded, using defaults: %v\n", err)
			}
			for _, b := range bindings {
				if err := w.uc.RegisterShortcut(b.Shortcut, b.Action); err != nil {
					logging.Errorf("register %s: %v", b.Shortcut, err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			srv := web.NewServer(w.uc, w.hub, addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Anki Creator bridge running at http://%s\n", addr)
			logging.Infof("bridge: http://%s (events at /api/events)", addr)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := w.uc.UnregisterAllShortcuts(); err != nil {
					logging.Warnf("unregister shortcuts: %v", err)
				}
				return srv.Shutdown(shutdownCtx)
			})
			err = g.Wait()
			fmt.Fprintln(cmd.OutOrStdout(), "Bridge shutting down...")
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:7070", "HTTP listen address host:port")
	cmd.Flags().StringArrayVar(&shortcuts, "shortcut", nil, "extra binding as spec=action, e.g. CommandOrControl+Shift+A=askAI (repeatable)")
	cmd.Flags().BoolVar(&noDefaults, "no-default-shortcuts", false, "skip the built-in CommandOrControl+F binding")
	cmd.Flags().BoolVar(&headless, "headless", false, "keep shortcuts in memory instead of registering OS hotkeys")
	return cmd
}

func parseBindings(raw []string) ([]domain.Binding, error) {
	out := make([]domain.Binding, 0, len(raw))
	for _, r := range raw {
		spec, action, ok := strings.Cut(r, "=")
		spec, action = strings.TrimSpace(spec), strings.TrimSpace(action)
		if !ok || spec == "" || action == "" {
			return nil, fmt.Errorf("--shortcut %q: expected spec=action", r)
		}
		out = append(out, domain.Binding{Shortcut: spec, Action: action})
	}
	return out, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or update the settings file",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd(), newConfigPathCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show current settings (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(false)
			if err != nil {
				return err
			}
			if err := w.uc.Bootstrap(); err != nil {
				return err
			}
			settings := w.uc.Settings()

			display := map[string]any{"api_key": nil}
			if settings.APIKey != nil {
				if reveal {
					display["api_key"] = *settings.APIKey
				} else {
					display["api_key"] = maskKey(*settings.APIKey)
				}
			}
			out, _ := json.MarshalIndent(display, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the API key unmasked")
	return cmd
}

func maskKey(key string) string {
	r := []rune(key)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-8) + string(r[len(r)-4:])
}

func newConfigSetCmd() *cobra.Command {
	var (
		apiKey string
		clearKey bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("api-key") && !clearKey {
				return errors.New("nothing to set: pass --api-key or --clear-api-key")
			}
			w, err := wire(false)
			if err != nil {
				return err
			}
			// Refuse to overwrite a file we could not read.
			if err := w.uc.Bootstrap(); err != nil {
				return err
			}
			var key *string
			if !clearKey {
				key = &apiKey
			}
			if err := w.uc.SetAPIKey(key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved: api_key set=%t\n", w.uc.Settings().HasAPIKey())
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to store")
	cmd.Flags().BoolVar(&clearKey, "clear-api-key", false, "remove the stored API key")
	cmd.MarkFlagsMutuallyExclusive("api-key", "clear-api-key")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(false)
			if err != nil {
				return err
			}
			path, err := w.uc.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newDirsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dirs",
		Short: "Print the canonical config and data directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range []struct {
				label   string
				resolve func() (string, error)
			}{
				{"config", w.uc.ConfigDir},
				{"data", w.uc.DataDir},
			} {
				path, err := d.resolve()
				if err != nil {
					fmt.Fprintf(out, "%-7s (unavailable: %v)\n", d.label, err)
					continue
				}
				fmt.Fprintf(out, "%-7s %s\n", d.label, path)
			}
			return nil
		},
	}
}

func newCopyCmd() *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Simulate the platform copy shortcut in the focused window",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire(false)
			if err != nil {
				return err
			}
			if delay > 0 {
				time.Sleep(delay)
			}
			w.uc.PressCopy()
			fmt.Fprintf(cmd.OutOrStdout(), "Pressed %s\n", domain.CopyChord(domain.CurrentPlatform()))
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 0, "wait before pressing, e.g. 2s to focus another window")
	return cmd
}

func newShortcutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortcut",
		Short: "Inspect shortcut specifications",
	}
	var platform string
	parse := &cobra.Command{
		Use:   "parse <spec>",
		Short: "Print the normalized form of a shortcut specification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.CurrentPlatform()
			if platform != "" {
				p = domain.Platform(platform)
			}
			accel, err := domain.ParseAccelerator(args[0], p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), accel.String())
			return nil
		},
	}
	parse.Flags().StringVar(&platform, "platform", "", "resolve for darwin|windows|linux instead of this OS")
	cmd.AddCommand(parse)
	return cmd
}

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell for running subcommands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "anki> ", "shell prompt")
	return cmd
}

func runInteractiveShell(prompt string) error {
	historyFile := filepath.Join(os.TempDir(), "anki-creator-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sessionVerbosity := verbosity
	fmt.Println("Interactive shell. Type 'help' for examples, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println()
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Println("Bye!")
			return nil
		case "help":
			printShellHelp()
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		if tokens[0] == "log" {
			if err := handleShellLog(os.Stdout, tokens[1:], &sessionVerbosity); err != nil {
				fmt.Printf("log: %v\n", err)
			}
			continue
		}
		if tokens[0] == "shell" {
			fmt.Println("Already in the shell. Enter another command or 'exit'.")
			continue
		}

		verbosity = sessionVerbosity
		if err := executeArgs(tokens); err != nil {
			fmt.Printf("command error: %v\n", err)
		}
		sessionVerbosity = verbosity
	}
}

func executeArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	// Building the root rebinds the persistent flags, which resets them.
	home, v := configHome, verbosity
	root := NewRootCmd()
	configHome, verbosity = home, v
	root.SetArgs(args)
	return root.Execute()
}

func handleShellLog(out io.Writer, args []string, sessionVerbosity *int) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "set level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Fprintf(out, "log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
	fmt.Fprintf(out, "log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp() {
	fmt.Println(`Examples:
  config get                          # show settings
  config set --api-key sk-...         # store an API key
  config set --clear-api-key          # remove it
  config path                         # where config.toml lives
  dirs                                # canonical config/data directories
  shortcut parse CmdOrCtrl+Shift+F    # normalize a shortcut
  copy --delay 2s                     # press the copy chord
  serve --addr 127.0.0.1:7070         # start the UI bridge
  log -vv                             # more log detail
  log --show                          # current log level
  exit / quit                         # leave the shell`)
}
