// Command appsettings-migrate moves <appSettings> entries from app.config
// and web.config into a project's appsettings.json.
//
// Usage:
//
//	appsettings-migrate analyze [--project DIR|FILE] [--json]
//	appsettings-migrate migrate [--project DIR|FILE] [--tracking absent|present|never] [--no-atomic]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/reoring/appsettings"
	"github.com/reoring/appsettings/i18n"
	"github.com/reoring/appsettings/internal/config"
	"github.com/reoring/appsettings/msbuild"
)

type rootFlags struct {
	configPath string
	project    string
	target     string
	tracking   string
	noAtomic   bool
	verbose    bool
}

// env carries what every subcommand needs once flags are resolved.
type env struct {
	cfg         config.Config
	opts        appsettings.Options
	projectFile string
	log         *log.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:   "appsettings-migrate",
		Short: "Migrate legacy appSettings into appsettings.json",
		Long: `appsettings-migrate reads <appSettings> from the project's app.config and
web.config, finds the settings that no appsettings*.json file defines yet,
and appends them to appsettings.json with inferred JSON types.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	pf.StringVarP(&f.project, "project", "p", "", "project file or directory (default current directory)")
	pf.StringVar(&f.target, "target", "", "settings file to write (default appsettings.json)")
	pf.StringVar(&f.tracking, "tracking", "", "when to add the settings file to the project: absent, present or never")
	pf.BoolVar(&f.noAtomic, "no-atomic", false, "rewrite the settings file in place instead of via rename")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newAnalyzeCmd(&f), newMigrateCmd(&f))
	return root
}

func setup(cmd *cobra.Command, f *rootFlags) (*env, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("project") {
		cfg.Project = f.project
	}
	if flags.Changed("target") {
		cfg.TargetFile = f.target
	}
	if flags.Changed("tracking") {
		cfg.Tracking = f.tracking
	}
	if flags.Changed("no-atomic") {
		atomic := !f.noAtomic
		cfg.AtomicWrite = &atomic
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	i18n.SetLanguage(cfg.Language)

	projectFile, err := resolveProject(cfg.Project)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:         cfg,
		opts:        opts,
		projectFile: projectFile,
		log:         newLogger(cmd.ErrOrStderr(), f.verbose),
	}, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	l.SetLevel(log.WarnLevel)
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// resolveProject turns a project flag value into a project file path. A
// directory must contain exactly one project file.
func resolveProject(p string) (string, error) {
	if p == "" {
		p = "."
	}
	st, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("project: %w", err)
	}
	if !st.IsDir() {
		return p, nil
	}
	return msbuild.FindProject(p)
}

func (e *env) run(ctx context.Context, dryRun bool) (appsettings.Report, error) {
	ctx = appsettings.WithLogger(ctx, e.log)
	p := appsettings.NewPipeline([]appsettings.Step{appsettings.NewMigrator(e.opts)}, appsettings.WithDryRun(dryRun))
	return p.Run(ctx, msbuild.NewWorkspace(e.projectFile))
}

func migrationOf(rep appsettings.Report) *appsettings.Migration {
	for _, s := range rep.Steps {
		if m, ok := s.Plan.(*appsettings.Migration); ok {
			return m
		}
	}
	return nil
}
