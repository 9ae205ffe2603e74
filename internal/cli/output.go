package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/curate/internal/editor"
)

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func textMode() bool {
	return formatFlag == "text"
}

// pageListing is the JSON shape of `curate list`.
type pageListing struct {
	Entries    []editor.EntryCard    `json:"entries"`
	Pagination editor.PaginationView `json:"pagination"`
	Stats      editor.Stats          `json:"stats"`
}

func listingText(vm editor.ViewModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", statsText(vm.Stats))
	if vm.EmptyMessage != "" {
		fmt.Fprintf(&b, "%s\n", vm.EmptyMessage)
		return b.String()
	}
	for i, c := range vm.Cards {
		fmt.Fprintf(&b, "%3d. %s  %s  %s", vm.Pagination.From+i, c.ID, c.Title, c.Timestamp)
		if c.Score != nil {
			fmt.Fprintf(&b, "  score %d", *c.Score)
		}
		fmt.Fprintf(&b, "\n     %s\n", c.Preview)
	}
	p := vm.Pagination
	fmt.Fprintf(&b, "Page %d/%d (entries %d-%d of %d)\n", p.Page, p.TotalPages, p.From, p.To, p.Total)
	return b.String()
}

func statsText(st editor.Stats) string {
	s := fmt.Sprintf("Dataset (%d): chat %d, instruction %d", st.Total, st.Chat, st.Instruction)
	if st.Scored > 0 {
		s += fmt.Sprintf(", avg quality %d", st.AverageScore)
	}
	return s
}

func validationText(p editor.ValidationPanel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (score %d)\n", p.Headline, p.Score)
	if len(p.Issues) > 0 {
		b.WriteString("Issues:\n")
		for _, s := range p.Issues {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	if len(p.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, s := range p.Warnings {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	}
	return b.String()
}
