package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/editor"
	"github.com/rcliao/curate/internal/model"
)

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "chat", "Record type: chat or instruction")
	cmd.Flags().StringP("system", "s", "", "System message (chat)")
	cmd.Flags().StringArrayP("message", "m", nil, "Chat message as role:content, repeatable, kept in order")
	cmd.Flags().String("instruction", "", "Instruction text (instruction)")
	cmd.Flags().String("input", "", "Optional input text (instruction)")
	cmd.Flags().String("output", "", "Expected output text (instruction)")
	cmd.Flags().String("template", "", "Start from a built-in template (see `curate templates`)")
}

// draftActions turns the draft flags into the editor actions that fill the form.
// A template replaces every other draft flag.
func draftActions(cmd *cobra.Command) ([]editor.Action, error) {
	if tmpl, _ := cmd.Flags().GetString("template"); tmpl != "" {
		return []editor.Action{editor.LoadTemplate(tmpl)}, nil
	}

	typ, _ := cmd.Flags().GetString("type")
	format := model.FormatMode(typ)
	if !model.ValidFormats[format] {
		return nil, fmt.Errorf("invalid type %q (want chat or instruction)", typ)
	}
	actions := []editor.Action{editor.SwitchFormat(format)}

	if format == model.FormatInstruction {
		instruction, _ := cmd.Flags().GetString("instruction")
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		return append(actions,
			editor.SetField(editor.FieldInstruction, instruction),
			editor.SetField(editor.FieldInput, input),
			editor.SetField(editor.FieldOutput, output),
		), nil
	}

	system, _ := cmd.Flags().GetString("system")
	messages, _ := cmd.Flags().GetStringArray("message")

	// row 0 is the editor's system message
	actions = append(actions, editor.SetMessage(0, system))
	for i, m := range messages {
		role, content, err := parseMessage(m)
		if err != nil {
			return nil, err
		}
		actions = append(actions, editor.AddMessage(role), editor.SetMessage(i+1, content))
	}
	return actions, nil
}

// parseMessage splits "role:content".
func parseMessage(s string) (model.Role, string, error) {
	role, content, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", fmt.Errorf("message %q: want role:content", s)
	}
	r := model.Role(strings.ToLower(strings.TrimSpace(role)))
	if !model.ValidRoles[r] {
		return "", "", fmt.Errorf("message %q: unknown role %q", s, role)
	}
	return r, content, nil
}

// fillDraft applies the draft flags to the session's editor.
func (s *session) fillDraft(cmd *cobra.Command) {
	actions, err := draftActions(cmd)
	if err != nil {
		exitErr("draft", err)
	}
	if err := applyDraft(cmd.Context(), s.ctrl, actions); err != nil {
		exitErr("draft", err)
	}
}

// applyDraft dispatches the draft actions in order. A template whose
// validation round-trip fails still leaves the form filled, so only that
// backend error is tolerated.
func applyDraft(ctx context.Context, ctrl *editor.Controller, actions []editor.Action) error {
	for _, a := range actions {
		err := ctrl.Dispatch(ctx, a)
		var apiErr *api.Error
		if a.Kind == editor.ActLoadTemplate && errors.As(err, &apiErr) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
