package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/curate/internal/editor"
	"github.com/rcliao/curate/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2)
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 1)

	verdictStyles = map[editor.Verdict]lipgloss.Style{
		editor.VerdictPending: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		editor.VerdictPass:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		editor.VerdictPartial: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		editor.VerdictFail:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// View renders the editor and dataset side by side, with modals on top.
func (m Model) View() string {
	if modal := m.modalView(); modal != "" {
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

	half := 0
	if m.width > 0 {
		half = m.width/2 - 2
	}
	left := paneStyle.Width(half).Render(m.formView() + "\n\n" + m.validationView())
	right := paneStyle.Width(half).Render(m.datasetView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var footer []string
	if m.vm.Banner != "" {
		footer = append(footer, bannerStyle.Render(m.vm.Banner))
	}
	if m.vm.Notice != "" {
		footer = append(footer, noticeStyle.Render(m.vm.Notice))
	}
	if m.status != "" {
		footer = append(footer, dimStyle.Render(m.status))
	}
	if m.inflight > 0 {
		footer = append(footer, dimStyle.Render("working…"))
	}
	footer = append(footer, m.help.View(m.keys))

	return body + "\n" + strings.Join(footer, "\n")
}

func (m Model) modalView() string {
	vm := m.vm
	switch {
	case vm.Confirm != nil:
		var b strings.Builder
		b.WriteString(vm.Confirm.Prompt)
		if vm.Confirm.Kind == editor.PendingSubmit {
			for _, s := range vm.Validation.Issues {
				fmt.Fprintf(&b, "\n  • %s", s)
			}
		}
		b.WriteString("\n\n" + dimStyle.Render("y confirm · n cancel"))
		return modalStyle.Render(b.String())
	case vm.Alert != "":
		return modalStyle.Render(vm.Alert + "\n\n" + dimStyle.Render("enter to close"))
	case vm.Detail != nil:
		d := vm.Detail
		return modalStyle.Render(titleStyle.Render(d.Title) + "  " + dimStyle.Render(d.ID) + "\n\n" + d.JSON +
			"\n\n" + dimStyle.Render("enter to close"))
	}
	return ""
}

func (m Model) formView() string {
	vm := m.vm
	var b strings.Builder
	b.WriteString(titleStyle.Render(vm.Format.Title()))
	b.WriteString(dimStyle.Render("  (f to switch)"))
	b.WriteString("\n")

	if vm.Format == model.FormatChat {
		if len(vm.Form.Messages) == 0 {
			b.WriteString("\n" + dimStyle.Render("No messages. Press u or a to add one."))
		}
		for i, row := range vm.Form.Messages {
			b.WriteString("\n")
			b.WriteString(m.slotView(i, string(row.Role), row.Content))
		}
		return b.String()
	}

	values := map[editor.Field]string{
		editor.FieldInstruction: vm.Form.Instruction,
		editor.FieldInput:       vm.Form.Input,
		editor.FieldOutput:      vm.Form.Output,
	}
	for i, f := range instructionFields {
		label := string(f)
		if f == editor.FieldInput {
			label += " (optional)"
		}
		b.WriteString("\n")
		b.WriteString(m.slotView(i, label, values[f]))
	}
	return b.String()
}

func (m Model) slotView(i int, label, content string) string {
	head := dimStyle.Render(label + ":")
	if i == m.focus {
		head = focusStyle.Render("› " + label + ":")
	}
	if i == m.focus && m.mode == modeEdit {
		return head + "\n" + m.input.View()
	}
	if strings.TrimSpace(content) == "" {
		return head + " " + dimStyle.Render("(empty)")
	}
	return head + " " + content
}

func (m Model) validationView() string {
	p := m.vm.Validation
	if p.Verdict == editor.VerdictNone {
		return dimStyle.Render("Not validated yet. Press v to check quality.")
	}

	var b strings.Builder
	b.WriteString(verdictStyles[p.Verdict].Render(p.Headline))
	if p.Verdict == editor.VerdictPending {
		return b.String()
	}
	fmt.Fprintf(&b, "  score %d", p.Score)
	if len(p.Issues) > 0 {
		b.WriteString("\nIssues:")
		for _, s := range p.Issues {
			fmt.Fprintf(&b, "\n  • %s", s)
		}
	}
	if len(p.Warnings) > 0 {
		b.WriteString("\nWarnings:")
		for _, s := range p.Warnings {
			fmt.Fprintf(&b, "\n  • %s", s)
		}
	}
	return b.String()
}

func (m Model) datasetView() string {
	vm := m.vm
	st := vm.Stats

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Dataset (%d)", st.Total)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  chat %d · instruction %d", st.Chat, st.Instruction)))
	if st.Scored > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" · avg quality %d", st.AverageScore)))
	}
	b.WriteString("\n")

	if vm.EmptyMessage != "" {
		b.WriteString("\n" + dimStyle.Render(vm.EmptyMessage))
		return b.String()
	}

	for i, c := range vm.Cards {
		head := fmt.Sprintf("%s  %s", c.Title, c.Timestamp)
		if c.Score != nil {
			head += fmt.Sprintf("  [%d]", *c.Score)
		}
		if i == m.cursor {
			head = selectedStyle.Render(head)
		}
		b.WriteString("\n" + head + "\n" + dimStyle.Render(c.Preview) + "\n")
	}

	p := vm.Pagination
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d of %d · %d-%d of %d · %d per page",
		p.Page, p.TotalPages, p.From, p.To, p.Total, p.PerPage)))
	return b.String()
}
