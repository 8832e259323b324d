package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"benchscope/internal/config"
	"benchscope/internal/facet"
	"benchscope/internal/ingest"
	"benchscope/internal/selection"
	"benchscope/internal/util/logx"
)

func initialModel(ctx context.Context, cfg *config.Config, opts Options) *Model {
	m := &Model{
		ctx:         ctx,
		cfg:         cfg,
		opts:        opts,
		sel:         selection.New(),
		facetSearch: map[facet.Category]string{},
		theme:       cfg.Theme,
		styles:      NewStyles(cfg.Theme == config.ThemeDark),
		keymap:      DefaultKeyMap(),
		query:       textinput.New(),
		expr:        textinput.New(),
		facetInput:  textinput.New(),
		spin:        spinner.New(),
		termWidth:   100,
		termHeight:  30,
	}
	m.spin.Spinner = spinner.Dot
	m.query.Placeholder = "search id, task, description, area..."
	m.query.Prompt = "/"
	m.query.CharLimit = 256
	m.expr.Placeholder = `e.g. year_num >= 2018 && license == "MIT"`
	m.expr.Prompt = "expr: "
	m.expr.CharLimit = 512
	m.facetInput.Placeholder = "filter options"
	m.facetInput.Prompt = "> "
	m.facetInput.CharLimit = 64

	m.tbl = table.New(table.WithFocused(true), table.WithHeight(cfg.PageSize))
	m.tbl.SetStyles(m.tableStyles())
	m.layout()
	return m
}

func (m *Model) tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header
	ts.Cell = m.styles.TableStyles.Cell
	ts.Selected = m.styles.TableStyles.Selected
	return ts
}

// Run starts the TUI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	m := initialModel(ctx, cfg, opts)
	popts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	for _, s := range cfg.Sources {
		if s == "-" {
			// stdin carries the dataset; keys come from the terminal
			popts = append(popts, tea.WithInputTTY())
			break
		}
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	if m.loadCancel != nil {
		m.loadCancel()
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.startLoad(), m.spin.Tick}
	if m.cfg.Watch {
		cmds = append(cmds, m.startWatch())
	}
	return tea.Batch(cmds...)
}

// startLoad supersedes any running load and returns the command that
// performs the new one.
func (m *Model) startLoad() tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.loadSeq++
	seq := m.loadSeq
	ctx, cancel := context.WithCancel(m.ctx)
	m.loadCancel = cancel
	m.loading = true
	opt := m.ingestOptions()
	logx.Infof("load #%d: candidates=%v", seq, opt.Candidates)
	return func() tea.Msg {
		res, err := ingest.Load(ctx, opt)
		return loadedMsg{seq: seq, res: res, err: err}
	}
}

func (m *Model) ingestOptions() ingest.Options {
	return ingest.Options{
		Candidates: m.cfg.Sources,
		Timeout:    m.cfg.Timeout,
		Offline:    m.cfg.Offline,
		NoCache:    m.cfg.NoCache,
		CacheDir:   m.cfg.CacheDir,
		Stdin:      m.opts.Stdin,
	}
}

func (m *Model) startWatch() tea.Cmd {
	var local []string
	for _, s := range m.cfg.Sources {
		if ingest.IsLocal(s) {
			local = append(local, s)
		}
	}
	if len(local) == 0 {
		logx.Warnf("watch: no local sources to watch")
		return nil
	}
	ch, err := ingest.Watch(m.ctx, local, 500*time.Millisecond)
	if err != nil {
		logx.Warnf("watch: %v", err)
		return nil
	}
	m.watch = ch
	return waitForChange(ch)
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return sourceChangedMsg{path: p}
	}
}
