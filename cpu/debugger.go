package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// model is the bubbletea model behind Debug: a thin wrapper around a
// *CPU that single-steps on keypress and renders a page of memory plus
// the register/flag file. It never mutates the CPU except by calling
// Tick, so watching a ROM run here is equivalent to running it headless.
type model struct {
	cpu *CPU

	offset uint16 // only for drawing the memory page table
	prevPC uint16
	err    error
}

// Init performs no setup; the CPU is expected to already have a ROM
// loaded and PC positioned by the caller before Debug is invoked.
func (m model) Init() tea.Cmd {
	return nil
}

// Update steps the CPU one instruction on space/j, quits on q.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.err = fmt.Errorf("%v", r)
					}
				}()
				m.cpu.Tick()
			}()
			if m.err != nil {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders 16 bytes of memory starting at start, highlighting
// PC if it falls within the row.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.cpu.read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

// status renders the register file and packed flag byte.
func (m model) status() string {
	var flags string
	for _, set := range []bool{
		m.cpu.Flags.Sign,
		m.cpu.Flags.Zero,
		m.cpu.Flags.AuxCarry,
		m.cpu.Flags.Parity,
		m.cpu.Flags.Carry,
	} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x   BC: %04x
 DE: %04x HL: %04x
S Z AC P C
%s
`,
		m.cpu.PC, m.prevPC,
		m.cpu.SP,
		m.cpu.A, m.cpu.getBC(),
		m.cpu.getDE(), m.cpu.getHL(),
		flags,
	)
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	rows := []string{header}
	base := (m.cpu.PC / 16) * 16
	for i := -2; i <= 2; i++ {
		rows = append(rows, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(rows, "\n")
}

// View renders the whole debugger screen: the memory page table, the
// register/flag panel, and a spew dump of the currently-fetched opcode's
// metadata.
func (m model) View() string {
	opcode, pc := m.cpu.LastOpcode()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(opcodeTable[opcode]),
		fmt.Sprintf("last fetched at %04x", pc),
	)
}

// Debug starts an interactive single-step TUI against c. The caller is
// expected to have already loaded a ROM and positioned PC.
func (c *CPU) Debug() error {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		return err
	}
	x := m.(model)
	return x.err
}
