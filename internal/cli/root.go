// Package cli wires the cobra command tree: the interactive browser plus
// the non-interactive search, facets, export and explain commands.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"benchscope/internal/ai"
	"benchscope/internal/config"
	"benchscope/internal/ingest"
	"benchscope/internal/prefs"
	"benchscope/internal/ui"
	"benchscope/internal/util"
	"benchscope/internal/util/logx"
	"benchscope/internal/version"
)

type app struct {
	cfg   *config.Config
	stdin io.Reader
	prefs *prefs.Store
}

// NewRootCmd builds a fresh command tree. Each call has its own Config so
// tests can run commands side by side.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:   "benchscope",
		Short: "Explore benchmark datasets in the terminal",
		Long: `benchscope loads a catalogue of machine-learning benchmark datasets
(CSV, JSON or NDJSON, local or over HTTP) and lets you narrow it down by
free text, task, modality, area, year and expression filters.

Without a subcommand it opens the interactive browser.`,
		Version:           version.String(),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
		RunE:              a.runBrowse,
	}
	a.cfg.BindFlags(root.PersistentFlags())
	root.AddCommand(
		newBrowseCmd(a),
		newSearchCmd(a),
		newFacetsCmd(a),
		newExportCmd(a),
		newExplainCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "browse",
		Aliases: []string{"tui"},
		Short:   "Open the interactive browser",
		Args:    cobra.NoArgs,
		RunE:    a.runBrowse,
	}
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	a.stdin = cmd.InOrStdin()
	if l, ok := logx.ParseLevel(a.cfg.LogLevel); ok {
		logx.SetLevel(l)
	}
	if !interactive(cmd) {
		// the terminal is not owned by a TUI, so logs can go to stderr
		logx.SetStderr(true)
	}
	a.applyPrefs(cmd)
	return a.cfg.Validate()
}

func interactive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "browse"
}

// applyPrefs fills options the user did not set explicitly from the
// preferences file.
func (a *app) applyPrefs(cmd *cobra.Command) {
	if a.cfg.NoPrefs {
		return
	}
	path := a.cfg.PrefsPath
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			logx.Debugf("prefs: %v", err)
			return
		}
		path = p
	}
	a.prefs = prefs.NewStore(path)
	p, err := a.prefs.Load()
	if err != nil {
		logx.Warnf("prefs: %v", err)
		return
	}
	if p.Theme != "" && !cmd.Flags().Changed("theme") && (p.Theme == string(config.ThemeDark) || p.Theme == string(config.ThemeLight)) {
		a.cfg.Theme = config.Theme(p.Theme)
	}
	if p.PageSize > 0 && !cmd.Flags().Changed("page-size") {
		a.cfg.PageSize = p.PageSize
	}
}

func (a *app) runBrowse(cmd *cobra.Command, _ []string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errors.New("the interactive browser needs a terminal; use search, facets or export instead")
	}
	logx.Infof("starting benchscope %s: %s", version.String(), a.cfg.String())
	return ui.Run(cmd.Context(), a.cfg, ui.Options{Prefs: a.prefs, AI: a.aiClient(), Stdin: a.stdin})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *app) aiClient() *ai.OpenAIClient {
	if a.cfg.Offline {
		return nil
	}
	return ai.NewOpenAIClient(a.cfg.OpenAIKey(), a.cfg.OpenAIBase, a.cfg.OpenAIModel, a.cfg.OpenAITimeout())
}

func (a *app) load(ctx context.Context) (*ingest.Result, error) {
	res, err := ingest.Load(ctx, ingest.Options{
		Candidates: a.cfg.Sources,
		Timeout:    a.cfg.Timeout,
		Offline:    a.cfg.Offline,
		NoCache:    a.cfg.NoCache,
		CacheDir:   a.cfg.CacheDir,
		Stdin:      a.stdin,
	})
	if err != nil {
		return nil, err
	}
	logx.Debugf("cli: using %s", util.RedactURL(res.Store.Source()))
	return res, nil
}
