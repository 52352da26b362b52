package inittui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pvandyken/mkinit/pkg/initcmd"
)

type GenModel struct {
	err               error
	startedPackages   []string
	completedPackages []string
	erroredPackages   []string
	spinner           spinner.Model
	progress          progress.Model
	totalPackages     int
	width             int
	height            int
	mu                sync.RWMutex
	done              bool
}

func NewGenModel() *GenModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	s := spinner.New()
	s.Style = spinnerStyle

	return &GenModel{
		startedPackages:   []string{},
		completedPackages: []string{},
		erroredPackages:   []string{},
		spinner:           s,
		progress:          p,
		mu:                sync.RWMutex{},
	}
}

func (m *GenModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.progress.SetPercent(0))
}

//nolint:ireturn // Third-party.
func (m *GenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if keyExits(msg) {
			return m, tea.Quit
		}

	case teaMsgWriteLog:
		return m, writeLog(msg, m.width)

	case initcmd.EventSetPackageTotal:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.totalPackages = int(msg)

	case initcmd.EventGeneratingPackage:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.startedPackages = append(m.startedPackages, string(msg))

	case initcmd.EventGeneratedPackage:
		m.mu.Lock()
		defer m.mu.Unlock()

		icon := checkMark
		if msg.Err != nil {
			m.erroredPackages = append(m.erroredPackages, msg.Package)
			icon = errorMark
		}

		m.completedPackages = append(m.completedPackages, msg.Package)
		completedCount := len(m.completedPackages)
		progressCmd := m.progress.SetPercent(float64(completedCount) / float64(m.totalPackages))

		if m.totalPackages == completedCount {
			m.done = true

			return m, tea.Sequence(
				tea.Printf("%s %s", icon, msg.Package),
				finalPause(),
				tea.Quit,
			)
		}

		return m, tea.Batch(
			progressCmd,
			tea.Printf("%s %s", icon, msg.Package),
		)

	case initcmd.EventDone:
		m.mu.Lock()
		defer m.mu.Unlock()

		if msg.Err != nil {
			m.err = msg.Err

			return m, tea.Sequence(finalPause(), tea.Quit)
		}

		if !m.done {
			// Nothing to generate; quit without a completion banner.
			return m, teaQuit()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}

		return m, cmd

	case error:
		m.mu.Lock()
		defer m.mu.Unlock()

		m.err = msg

		return m, tea.Sequence(finalPause(), tea.Quit)
	}

	return m, nil
}

func (m *GenModel) View() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return getErrorMessage(m.err, m.width)
	}

	completedCount := len(m.completedPackages)

	if m.done {
		return doneStyle.Render(fmt.Sprintf("Done! Generated %d packages.\n", completedCount))
	}

	w := lipgloss.Width(strconv.Itoa(m.totalPackages))
	pkgCount := fmt.Sprintf(" %*d/%*d", w, completedCount, w, m.totalPackages)

	prog := m.progress.View()
	progRendered := progressStyle.Render(prog + pkgCount)
	progCellsRemaining := max(0, m.width-lipgloss.Width(progRendered))
	gap := strings.Repeat(" ", progCellsRemaining)
	progOut := progRendered + gap + "\n"

	inProgressPackages := differenceStringSlices(m.startedPackages, m.completedPackages)

	spinners := []string{}
	for _, pkg := range inProgressPackages {
		spin := m.spinner.View() + " "
		cellsAvail := max(0, m.width-lipgloss.Width(spin))

		pkgName := currentNameStyle.Render(pkg)
		info := lipgloss.NewStyle().MaxWidth(cellsAvail).Render("Generating " + pkgName)

		cellsRemaining := max(0, m.width-lipgloss.Width(spin+info))
		gap := strings.Repeat(" ", cellsRemaining)

		spinners = append(spinners, spin+info+gap)
	}

	return strings.Join(spinners, "\n") + "\n" + progOut
}

func differenceStringSlices(a, b []string) []string {
	difference := []string{}

	for _, x := range a {
		if !slices.Contains(b, x) {
			difference = append(difference, x)
		}
	}

	return difference
}
