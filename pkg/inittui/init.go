package inittui

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pvandyken/mkinit/pkg/initcmd"
	"github.com/pvandyken/mkinit/pkg/log"
)

// GenTUI wraps a generate/check driver with an interactive progress
// display. Log output is rerouted into the TUI for the duration of the
// run.
type GenTUI struct {
	pkg Commander
	p   *tea.Program
	w   io.Writer
}

// Commander is the generation surface driven by the TUI.
type Commander interface {
	Update() error
	Check() error
	Subscribe(f func(any))
}

func NewGenTUI(w io.Writer, logLevel string, pkg Commander) (*GenTUI, error) {
	c := &GenTUI{
		pkg: pkg,
		w:   w,
	}

	c.pkg.Subscribe(c.broadcastEvent)

	handler, err := log.CreateHandlerWithStrings(c, logLevel, log.FormatText)
	if err != nil {
		return nil, fmt.Errorf("failed to create log handler: %w", err)
	}

	slog.SetDefault(slog.New(handler))

	return c, nil
}

func (c *GenTUI) broadcastEvent(evt any) {
	if c.p != nil {
		c.p.Send(evt)
	}
}

func (c *GenTUI) Write(p []byte) (int, error) {
	c.broadcastEvent(teaMsgWriteLog(string(p)))

	return len(p), nil
}

func (c *GenTUI) Subscribe(f func(any)) {
	c.pkg.Subscribe(f)
}

func (c *GenTUI) Update() error {
	return c.launch(c.pkg.Update)
}

func (c *GenTUI) Check() error {
	return c.launch(c.pkg.Check)
}

func (c *GenTUI) launch(run func() error) error {
	c.p = tea.NewProgram(NewGenModel(), tea.WithOutput(c.w))

	errChan := make(chan error, 1)

	go func() {
		err := run()
		errChan <- err
		c.broadcastEvent(initcmd.EventDone{Err: err})
	}()

	if _, err := c.p.Run(); err != nil {
		return fmt.Errorf("failed to launch tui: %w", err)
	}

	return <-errChan
}
