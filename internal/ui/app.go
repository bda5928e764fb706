package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/kiosk/internal/logging"
	"github.com/five82/kiosk/internal/nav"
	"github.com/five82/kiosk/internal/prefs"
	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/session"
	"github.com/five82/kiosk/internal/storefront"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Session     *session.Flag
	Sources     nav.Sources
	Queries     *query.Client
	Fetcher     storefront.Fetcher
	Logger      logrus.FieldLogger
	Placeholder string
	ThemeName   string
	LastEmail   string
	PrefsPath   string
	LogFile     string
	Tick        time.Duration
	RetryBase   time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx         context.Context
	session     *session.Flag
	sources     nav.Sources
	fetcher     storefront.Fetcher
	log         logrus.FieldLogger
	placeholder string
	prefsPath   string
	logFile     string
	tick        time.Duration
	retryBase   time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string
	now      time.Time // last tick

	logLines []string

	// Navigation state
	inputs   nav.Inputs
	modals   nav.Modals
	login    authDialog
	register authDialog
	menu     profileMenu
	router   router

	lastEmail string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	m := Model{
		ctx:         ctx,
		session:     opts.Session,
		sources:     opts.Sources,
		fetcher:     opts.Fetcher,
		log:         logger.WithField("component", "ui"),
		placeholder: opts.Placeholder,
		prefsPath:   prefsPath,
		logFile:     opts.LogFile,
		tick:        tick,
		retryBase:   opts.RetryBase,
		now:         time.Now(),
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		login:       newLoginDialog(),
		register:    newRegisterDialog(),
		router:      newRouter(),
		lastEmail:   opts.LastEmail,
	}
	m.refreshInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.refreshInputs()
		if m.router.Path() == routeLogs {
			return m, tea.Batch(tickCmd(m.tick), m.tailLogs())
		}
		return m, tickCmd(m.tick)

	case logLinesMsg:
		m.logLines = msg.lines
		return m, nil

	case cacheMsg:
		m.refreshInputs()
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	navbar := m.renderNavbar()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(navbar) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if modal := m.activeModal(); modal != nil {
		body = modal.View(m.theme, m.width, bodyHeight)
	} else {
		content := m.renderContent()
		if m.menu.open {
			content = m.renderMenuOverlay() + "\n" + content
		}
		body = lipgloss.NewStyle().
			Padding(1, 2).
			Width(m.width).
			Height(bodyHeight).
			MaxHeight(bodyHeight).
			Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left, navbar, body, footer)
}

// activeModal returns the dialog to draw. When both flags are set the login
// dialog wins, so only one dialog is ever on screen.
func (m *Model) activeModal() Modal {
	switch {
	case m.modals.LoginOpen:
		return &m.login
	case m.modals.RegisterOpen:
		return &m.register
	default:
		return nil
	}
}

func (m *Model) refreshInputs() {
	if m.session == nil || m.sources.Profile == nil || m.sources.Cart == nil {
		return
	}
	m.inputs = m.sources.Inputs()
}

func (m Model) mode() nav.Mode {
	return nav.SelectMode(m.inputs)
}

// handleKey processes keyboard input. Overlays take keys first: help, then
// the open dialog, then the profile menu.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modals.AnyOpen() {
		return m.handleDialogKey(msg)
	}

	if m.menu.open {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.OpenLogin):
		if m.mode() == nav.ModeAnonymous {
			return m, m.openLogin()
		}

	case key.Matches(msg, m.keys.OpenRegister):
		if m.mode() == nav.ModeAnonymous {
			m.modals.OpenRegister()
			return m, m.register.Reset("")
		}

	case key.Matches(msg, m.keys.OpenCart):
		if m.mode() == nav.ModeCustomer {
			m.router.NavigateTo(routeCart)
		}

	case key.Matches(msg, m.keys.ProfileMenu):
		m.menu.Open(m.mode())

	case key.Matches(msg, m.keys.ActivityLog):
		m.router.NavigateTo(routeLogs)
		return m, m.tailLogs()

	case key.Matches(msg, m.keys.Home):
		m.router.NavigateTo(routeHome)

	case key.Matches(msg, m.keys.Back):
		m.router.Back()

	case key.Matches(msg, m.keys.Escape):
		m.notice = ""
	}

	return m, nil
}

func (m *Model) openLogin() tea.Cmd {
	m.modals.OpenLogin()
	return m.login.Reset(m.lastEmail)
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modals.LoginOpen {
		ev, cmd := m.login.HandleKey(msg, m.keys)
		switch ev {
		case dialogClose:
			m.modals.CloseLogin()
		case dialogSwitch:
			m.modals.SwitchToRegister()
			cmd = m.register.Reset("")
		case dialogSubmit:
			cmd = loginCmd(m.ctx, m.fetcher, m.login.LoginRequest())
		}
		return m, cmd
	}

	ev, cmd := m.register.HandleKey(msg, m.keys)
	switch ev {
	case dialogClose:
		m.modals.CloseRegister()
	case dialogSwitch:
		m.modals.SwitchToLogin()
		cmd = m.login.Reset(m.lastEmail)
	case dialogSubmit:
		cmd = registerCmd(m.ctx, m.fetcher, m.register.RegisterRequest())
	}
	return m, cmd
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ProfileMenu):
		m.menu.Close()
	case key.Matches(msg, m.keys.Up):
		m.menu.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.menu.Move(1)
	case key.Matches(msg, m.keys.Confirm):
		item, ok := m.menu.Selected()
		m.menu.Close()
		if !ok {
			return m, nil
		}
		switch item.action {
		case menuProfile:
			m.router.NavigateTo(routeProfile)
		case menuCart:
			m.router.NavigateTo(routeCart)
		case menuLogout:
			m.logout()
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) logout() {
	if m.session != nil {
		m.session.Logout()
	}
	m.router.Reset()
	m.notice = "Signed out"
	m.log.Info("user logged out")
	m.refreshInputs()
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("login failed")
		m.login.Fail(describeSubmitError(msg.err))
		return m, nil
	}

	if m.session != nil {
		m.session.Login(msg.auth)
	}
	m.modals.CloseLogin()
	m.login.busy = false
	m.lastEmail = msg.auth.Email
	m.savePrefs()
	m.notice = "Signed in as " + displayName(msg.auth)
	m.log.WithField("role", msg.auth.Role).Info("user logged in")
	m.refreshInputs()
	return m, nil
}

func (m Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).Warn("register failed")
		m.register.Fail(describeSubmitError(msg.err))
		return m, nil
	}

	m.register.busy = false
	m.notice = "Account created. Log in to continue."
	if !m.modals.RegisterOpen {
		return m, nil
	}
	m.modals.SwitchToLogin()
	return m, m.login.Reset(msg.email)
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, LastEmail: m.lastEmail}); err != nil {
		m.log.WithError(err).Warn("save prefs")
	}
}

// renderFooter renders the key hints bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type hint struct{ key, desc string }
	var hints []hint
	switch m.mode() {
	case nav.ModeAnonymous:
		hints = []hint{{"l", "Login"}, {"r", "Register"}}
	case nav.ModeCustomer:
		hints = []hint{{"c", "Cart"}, {"p", "Account"}}
	default:
		hints = []hint{{"p", "Account"}}
	}
	hints = append(hints, hint{"L", "Activity"}, hint{"H", "Home"}, hint{"?", "More"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(hints)+2)
	for _, h := range hints {
		segments = append(segments, bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	if m.notice != "" {
		segments = append(segments, bg.Render(truncate(m.notice, 40), styles.SuccessText))
	}
	segments = append(segments, bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

func displayName(auth storefront.AuthResponse) string {
	if strings.TrimSpace(auth.Name) != "" {
		return auth.Name
	}
	return auth.Email
}

// describeSubmitError turns a submit failure into a one-line message.
func describeSubmitError(err error) string {
	var apiErr *storefront.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "storefront did not respond"
	}
	return err.Error()
}

// Messages

type tickMsg time.Time

// cacheMsg reports that a query cache entry settled or was invalidated.
type cacheMsg struct{ key string }

type loginResultMsg struct {
	auth storefront.AuthResponse
	err  error
}

type logLinesMsg struct{ lines []string }

type registerResultMsg struct {
	email string
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tailLogs reads the end of the log file off the event loop.
func (m Model) tailLogs() tea.Cmd {
	path, limit := m.logFile, LogTailLines
	log := m.log
	return func() tea.Msg {
		lines, err := logging.Tail(path, limit)
		if err != nil {
			log.WithError(err).Debug("tail log")
		}
		return logLinesMsg{lines: lines}
	}
}

func loginCmd(ctx context.Context, fetcher storefront.Fetcher, req storefront.LoginRequest) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return loginResultMsg{err: errors.New("storefront unavailable")}
		}
		ctx, cancel := context.WithTimeout(ctx, SubmitTimeout)
		defer cancel()
		auth, err := fetcher.Login(ctx, req)
		return loginResultMsg{auth: auth, err: err}
	}
}

func registerCmd(ctx context.Context, fetcher storefront.Fetcher, req storefront.RegisterRequest) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return registerResultMsg{err: errors.New("storefront unavailable")}
		}
		ctx, cancel := context.WithTimeout(ctx, SubmitTimeout)
		defer cancel()
		resp, err := fetcher.Register(ctx, req)
		email := resp.Email
		if email == "" {
			email = req.Email
		}
		return registerResultMsg{email: email, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Queries != nil {
		// Subscribers may fire on the event loop goroutine; Send must not block it.
		opts.Queries.Subscribe(func(key string) {
			go p.Send(cacheMsg{key: key})
		})
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
