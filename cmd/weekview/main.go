package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rpggio/weekgrid/internal/app"
	"github.com/rpggio/weekgrid/internal/calendar"
	"github.com/rpggio/weekgrid/internal/config"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/ics"
	"github.com/rpggio/weekgrid/internal/logging"
	"github.com/rpggio/weekgrid/internal/tui"
)

type rootOptions struct {
	configPath  string
	dbPath      string
	workspaceID string
	userID      string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "weekview",
		Short: "Plan your week on a terminal calendar",
		Long: `weekview shows one week of time blocks. Drag on an empty cell to
create a block, drag a block to move it, hold Ctrl while dragging to copy it,
and drag its top or bottom edge to resize it.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("WEEKGRID_CONFIG_PATH"), "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.workspaceID, "workspace", "", "workspace ID (default workspace when empty)")
	cmd.PersistentFlags().StringVar(&opts.userID, "user", "", "user ID (defaults to auth.default_user)")

	cmd.AddCommand(newExportCommand(opts), newKeysCommand(opts))
	return cmd
}

// session is the opened state shared by every subcommand.
type session struct {
	cfg    config.Config
	app    *app.App
	userID string
	close  func()
}

func open(opts *rootOptions, logOut io.Writer) (*session, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.DB.Path = opts.dbPath
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.Path, logOut)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	a, err := app.Open(cfg.DB.Path, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	userID := opts.userID
	if userID == "" {
		userID = cfg.Auth.DefaultUser
	}
	return &session{
		cfg:    cfg,
		app:    a,
		userID: userID,
		close: func() {
			a.Close()
			closeLog()
		},
	}, nil
}

func runView(ctx context.Context, opts *rootOptions) error {
	// The terminal belongs to the view, so logs only go to a configured file.
	s, err := open(opts, io.Discard)
	if err != nil {
		return err
	}
	defer s.close()

	ws, err := s.app.Workspaces.Resolve(ctx, s.userID, opts.workspaceID)
	if err != nil {
		return fmt.Errorf("resolve workspace: %w", err)
	}

	cal := s.cfg.Calendar
	model := tui.New(ctx, s.app.TimeBlocks, tui.Options{
		UserID:         s.userID,
		WorkspaceID:    ws.ID,
		WorkspaceName:  ws.Name,
		StartHour:      cal.StartHour,
		EndHour:        cal.EndHour,
		SnapMinutes:    cal.SnapMinutes,
		FirstWeekday:   cal.FirstWeekday(),
		ClickThreshold: cal.ClickThreshold,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		output string
		weeks  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a workspace's blocks as iCalendar",
		Example: `
weekview export > week.ics
weekview export --weeks 4 --output month.ics
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := open(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			ws, err := s.app.Workspaces.Resolve(ctx, s.userID, opts.workspaceID)
			if err != nil {
				return fmt.Errorf("resolve workspace: %w", err)
			}

			var blocks []timeblock.TimeBlock
			if weeks > 0 {
				from := calendar.WeekStart(time.Now(), s.cfg.Calendar.FirstWeekday())
				blocks, err = s.app.TimeBlocks.ListRange(ctx, s.userID, ws.ID, from, from.AddDate(0, 0, 7*weeks))
			} else {
				blocks, err = s.app.TimeBlocks.List(ctx, s.userID, ws.ID)
			}
			if err != nil {
				return err
			}

			doc := ics.Export(blocks, ics.Options{Name: ws.Name})
			if output == "" || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), doc)
				return err
			}
			return os.WriteFile(output, []byte(doc), 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when empty)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "only export this many weeks starting with the current one (0 exports everything)")
	return cmd
}

func newKeysCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys for the HTTP server",
	}

	var description string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an API key for the user and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			token, err := newToken()
			if err != nil {
				return err
			}
			if err := s.app.APIKeys.Add(cmd.Context(), s.userID, token, description); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "note stored with the key")

	cmd.AddCommand(add)
	return cmd
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
