package appsettings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/reoring/appsettings/legacy"
	"github.com/reoring/appsettings/settingsdoc"
)

// Migration is the Plan produced by Migrator.Analyze.
type Migration struct {
	// ProjectDir is the project root the plan was computed for.
	ProjectDir string
	Residual   *ResidualSet
	Issues     Issues
	// Sources lists the legacy configuration files that were found.
	Sources []string
	// Existing lists the settings files that were already present.
	Existing []string
	// Written lists the keys Apply appended to the target file.
	Written []string
}

// Empty reports whether no settings need migrating.
func (m *Migration) Empty() bool { return m == nil || m.Residual.Len() == 0 }

// Migrator is the Step that moves <appSettings> entries into the project's
// JSON settings file.
type Migrator struct {
	opts Options
}

var _ Step = (*Migrator)(nil)

// NewMigrator returns a Migrator. Start from DefaultOptions; nil ConfigFiles,
// an empty TargetFile and a zero Write format are replaced by the defaults.
func NewMigrator(opts Options) *Migrator {
	def := DefaultOptions()
	if opts.ConfigFiles == nil {
		opts.ConfigFiles = def.ConfigFiles
	}
	if opts.TargetFile == "" {
		opts.TargetFile = def.TargetFile
	}
	if opts.Write == (settingsdoc.WriteFormat{}) {
		opts.Write = def.Write
	}
	return &Migrator{opts: opts}
}

// Name implements Step.
func (m *Migrator) Name() string { return "appsettings" }

// Options returns the effective options.
func (m *Migrator) Options() Options { return m.opts }

// Analyze implements Step. It loads the configured legacy configuration files
// and every existing settings file in the project directory and returns a
// *Migration. A corrupt settings file fails the analysis.
func (m *Migrator) Analyze(ctx context.Context, ws Workspace) (Plan, error) {
	log := LoggerFrom(ctx)
	proj, err := requireProject(ctx, ws)
	if err != nil {
		return nil, err
	}
	dir := proj.Dir()
	plan := &Migration{ProjectDir: dir}

	var sources []ConfigSource
	for _, name := range m.opts.ConfigFiles {
		doc, ok, err := legacy.LoadFile(ctx, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if !ok {
			log.WithField("file", name).Debug("configuration file not found")
			continue
		}
		sources = append(sources, doc)
		plan.Sources = append(plan.Sources, name)
	}

	names, err := settingsdoc.Discover(dir)
	if err != nil {
		return nil, err
	}
	existing := make([]*settingsdoc.Document, 0, len(names))
	for _, name := range names {
		doc, err := settingsdoc.ReadFile(ctx, filepath.Join(dir, name), m.opts.readFormat())
		if err != nil {
			return nil, err
		}
		existing = append(existing, doc)
		plan.Existing = append(plan.Existing, name)
	}

	plan.Residual, plan.Issues = Analyze(sources, existing)
	for _, it := range plan.Issues {
		log.WithFields(logrus.Fields{
			"code":   it.Code,
			"source": it.Source,
			"path":   it.Path,
		}).Debug(it.Message)
	}
	log.WithFields(logrus.Fields{
		"sources":  len(plan.Sources),
		"existing": len(plan.Existing),
		"residual": plan.Residual.Len(),
	}).Info("analysis complete")
	return plan, nil
}

// Apply implements Step. It merges the plan's residual settings into the
// target file, reloads the workspace and makes sure the file is tracked as a
// content item according to Options.Tracking.
func (m *Migrator) Apply(ctx context.Context, ws Workspace, p Plan) error {
	plan, ok := p.(*Migration)
	if !ok || plan == nil {
		return fmt.Errorf("%w: %T", ErrUnsupportedPlan, p)
	}
	log := LoggerFrom(ctx)
	proj, err := requireProject(ctx, ws)
	if err != nil {
		return err
	}
	target := filepath.Join(proj.Dir(), m.opts.TargetFile)

	opt := MergeOptions{
		Read:  m.opts.readFormat(),
		Write: settingsdoc.WriteOptions{Format: m.opts.Write, Atomic: m.opts.AtomicWrite},
	}
	res, err := Merge(ctx, target, plan.Residual, opt)
	if err != nil {
		return err
	}
	plan.Written = res.Appended
	plan.Issues = append(plan.Issues, res.Skipped...)
	log.WithFields(logrus.Fields{
		"file":       target,
		"properties": res.Document.Len(),
		"appended":   len(res.Appended),
	}).Info("settings file written")

	if err := ws.Reload(ctx); err != nil {
		return fmt.Errorf("reloading workspace: %w", err)
	}
	return m.track(ctx, ws, target)
}

func (m *Migrator) track(ctx context.Context, ws Workspace, target string) error {
	if m.opts.Tracking == TrackNever {
		return nil
	}
	proj, err := requireProject(ctx, ws)
	if err != nil {
		return err
	}
	contains := proj.ContainsItem(target, ContentItem)
	var add bool
	switch m.opts.Tracking {
	case TrackWhenPresent:
		add = contains
	default:
		add = !contains
	}
	if !add {
		return nil
	}
	if err := proj.AddItem(ContentItem, target); err != nil {
		return fmt.Errorf("adding %s to project: %w", filepath.Base(target), err)
	}
	if err := proj.Save(ctx); err != nil {
		return err
	}
	LoggerFrom(ctx).WithFields(logrus.Fields{
		"file":     target,
		"tracking": m.opts.Tracking.String(),
	}).Info("settings file added to project")
	return nil
}
