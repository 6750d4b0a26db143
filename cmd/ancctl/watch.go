/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/headsetbridge/pkg/controller"
	"github.com/carverauto/headsetbridge/pkg/models"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

const (
	barWidth     = 30
	labelWidth   = 7
	maxLogLines  = 5
	appPadding   = 2
	percentScale = 100.0
	unknownLevel = int(models.UnknownLevel)
)

type watchStyles struct {
	title, label, connected, disconnected, mode, help, hint, error, log, app lipgloss.Style
}

func newWatchStyles() watchStyles {
	return watchStyles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Width(labelWidth),
		connected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		disconnected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)),
		mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		log: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Italic(true),
		app: lipgloss.NewStyle().
			Padding(1, appPadding).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

type batteryMsg struct {
	left, right, box int
	mac              string
}

type connectionMsg struct {
	connected bool
}

type sentMsg struct {
	mode models.Mode
	err  error
}

type diagnosticMsg models.DiagnosticMessage

// programCallback forwards controller notifications into the program loop.
type programCallback struct {
	send func(tea.Msg)
}

func (c programCallback) OnBatteryUpdated(left, right, box int, mac string) {
	c.send(batteryMsg{left: left, right: right, box: box, mac: mac})
}

func (c programCallback) OnConnectionStateChanged(connected bool) {
	c.send(connectionMsg{connected: connected})
}

type switcher interface {
	SwitchMode(ctx context.Context, mode models.Mode) error
	CycleMode(ctx context.Context) (models.Mode, error)
}

type watchModel struct {
	ctx     context.Context
	ctl     switcher
	bar     progress.Model
	state   controller.Snapshot
	mode    models.Mode
	hasMode bool
	status  string
	err     error
	logs    []string
	canCopy bool
	styles  watchStyles
}

func newWatchModel(ctx context.Context, ctl switcher) *watchModel {
	return &watchModel{
		ctx: ctx,
		ctl: ctl,
		bar: progress.New(
			progress.WithGradient(draculaPurple, draculaPink),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		state:   controller.Snapshot{Left: unknownLevel, Right: unknownLevel, Box: unknownLevel},
		canCopy: !clipboard.Unsupported,
		styles:  newWatchStyles(),
	}
}

func (*watchModel) Init() tea.Cmd {
	return nil
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case batteryMsg:
		m.state = controller.Snapshot{
			Left:      msg.left,
			Right:     msg.right,
			Box:       msg.box,
			MAC:       msg.mac,
			Connected: msg.left >= 0 || msg.right >= 0,
		}
	case connectionMsg:
		if msg.connected {
			m.state.Connected = true
		} else {
			m.state = controller.Snapshot{Left: unknownLevel, Right: unknownLevel, Box: unknownLevel}
		}
	case sentMsg:
		m.handleSent(msg)
	case diagnosticMsg:
		m.logs = append(m.logs, msg.Log)
		if len(m.logs) > maxLogLines {
			m.logs = m.logs[len(m.logs)-maxLogLines:]
		}
	}

	return m, nil
}

func (m *watchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "o":
		return m, m.switchTo(models.ModeOff)
	case "t":
		return m, m.switchTo(models.ModeTransparency)
	case "a":
		return m, m.switchTo(models.ModeStrongANC)
	case "c":
		return m, m.cycle()
	case "y":
		m.copyAddress()
	}

	return m, nil
}

func (m *watchModel) switchTo(mode models.Mode) tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	m.status = "sending " + mode.String()

	return func() tea.Msg {
		return sentMsg{mode: mode, err: ctl.SwitchMode(ctx, mode)}
	}
}

func (m *watchModel) cycle() tea.Cmd {
	ctx, ctl := m.ctx, m.ctl
	m.status = "cycling"

	return func() tea.Msg {
		mode, err := ctl.CycleMode(ctx)

		return sentMsg{mode: mode, err: err}
	}
}

func (m *watchModel) handleSent(msg sentMsg) {
	if msg.err != nil {
		m.err = msg.err
		m.status = ""

		return
	}

	m.err = nil
	m.mode = msg.mode
	m.hasMode = true
	m.status = "sent " + msg.mode.String()
}

func (m *watchModel) copyAddress() {
	switch {
	case m.state.MAC == "":
		m.status = "no address to copy"
	case !m.canCopy:
		m.status = "clipboard unavailable"
	default:
		if err := clipboard.WriteAll(m.state.MAC); err != nil {
			m.status = "failed to copy address"
			return
		}

		m.status = "address copied"
	}
}

func (m *watchModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("🎧 headset"))
	b.WriteString("  ")

	if m.state.Connected {
		b.WriteString(m.styles.connected.Render("connected"))
	} else {
		b.WriteString(m.styles.disconnected.Render("disconnected"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.label.Render("address"))

	if m.state.MAC != "" {
		b.WriteString(m.state.MAC)
	} else {
		b.WriteString("--")
	}

	b.WriteString("\n\n")
	m.writeBar(&b, "left", m.state.Left)
	m.writeBar(&b, "right", m.state.Right)
	m.writeBar(&b, "case", m.state.Box)
	b.WriteString("\n")

	b.WriteString(m.styles.label.Render("mode"))

	if m.hasMode {
		b.WriteString(m.styles.mode.Render(m.mode.String()))
	} else {
		b.WriteString("--")
	}

	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n" + m.styles.error.Render(describe(m.err)) + "\n")
	case m.status != "":
		b.WriteString("\n" + m.styles.hint.Render(m.status) + "\n")
	}

	if len(m.logs) > 0 {
		b.WriteString("\n")

		for _, line := range m.logs {
			b.WriteString(m.styles.log.Render(line) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.help.Render("o off • t transparency • a anc • c cycle • y copy address • q quit"))

	return m.styles.app.Render(b.String())
}

func (m *watchModel) writeBar(b *strings.Builder, label string, level int) {
	b.WriteString(m.styles.label.Render(label))

	percent := 0.0
	if level > 0 {
		percent = float64(level) / percentScale
	}

	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString(" " + formatLevel(level) + "\n")
}

func describe(err error) string {
	if errors.Is(err, controller.ErrNotConnected) {
		return "headset not connected"
	}

	return fmt.Sprintf("error: %v", err)
}

func runWatch(ctx context.Context, cfg *CmdConfig) error {
	sess, err := dial(ctx, cfg, io.Discard)
	if err != nil {
		return err
	}
	defer sess.close()

	ctl := sess.controller(cfg)

	p := tea.NewProgram(newWatchModel(ctx, ctl), tea.WithAltScreen(), tea.WithContext(ctx))
	ctl.SetCallback(programCallback{send: p.Send})

	if err := ctl.Initialize(ctx); err != nil {
		return err
	}
	defer ctl.Destroy()

	stopLogs, err := sess.sub.SubscribeDiagnostics(ctx, func(msg models.DiagnosticMessage) {
		p.Send(diagnosticMsg(msg))
	})
	if err != nil {
		return err
	}

	defer func() {
		_ = stopLogs()
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	return nil
}
