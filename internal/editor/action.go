package editor

import (
	"github.com/rcliao/curate/internal/api"
	"github.com/rcliao/curate/internal/model"
)

// ActionKind enumerates every user action the editor understands.
type ActionKind int

const (
	ActSwitchFormat ActionKind = iota
	ActAddMessage
	ActRemoveMessage
	ActSetMessage
	ActSetRole
	ActSetField
	ActClearForm
	ActValidate
	ActSubmit
	ActConfirm
	ActDecline
	ActReload
	ActDelete
	ActClearAll
	ActSetPage
	ActNextPage
	ActPrevPage
	ActSetPerPage
	ActLoadTemplate
	ActDownload
	ActInspect
	ActCloseDetail
	ActDismissAlert
	ActDismissBanner
)

var actionNames = map[ActionKind]string{
	ActSwitchFormat:  "switch-format",
	ActAddMessage:    "add-message",
	ActRemoveMessage: "remove-message",
	ActSetMessage:    "set-message",
	ActSetRole:       "set-role",
	ActSetField:      "set-field",
	ActClearForm:     "clear-form",
	ActValidate:      "validate",
	ActSubmit:        "submit",
	ActConfirm:       "confirm",
	ActDecline:       "decline",
	ActReload:        "reload",
	ActDelete:        "delete",
	ActClearAll:      "clear-all",
	ActSetPage:       "set-page",
	ActNextPage:      "next-page",
	ActPrevPage:      "prev-page",
	ActSetPerPage:    "set-per-page",
	ActLoadTemplate:  "load-template",
	ActDownload:      "download",
	ActInspect:       "inspect",
	ActCloseDetail:   "close-detail",
	ActDismissAlert:  "dismiss-alert",
	ActDismissBanner: "dismiss-banner",
}

func (k ActionKind) String() string {
	if s, ok := actionNames[k]; ok {
		return s
	}
	return "unknown"
}

// Action is one dispatched user action. Only the fields relevant to Kind are read.
type Action struct {
	Kind   ActionKind
	Format model.FormatMode
	Role   model.Role
	Index  int
	Field  Field
	Text   string
	ID     string
	Page   int
	Export api.ExportFormat
}

func SwitchFormat(f model.FormatMode) Action { return Action{Kind: ActSwitchFormat, Format: f} }
func AddMessage(r model.Role) Action         { return Action{Kind: ActAddMessage, Role: r} }
func RemoveMessage(i int) Action             { return Action{Kind: ActRemoveMessage, Index: i} }
func SetMessage(i int, text string) Action   { return Action{Kind: ActSetMessage, Index: i, Text: text} }
func SetRole(i int, r model.Role) Action     { return Action{Kind: ActSetRole, Index: i, Role: r} }
func SetField(f Field, text string) Action   { return Action{Kind: ActSetField, Field: f, Text: text} }
func ClearForm() Action                      { return Action{Kind: ActClearForm} }
func Validate() Action                       { return Action{Kind: ActValidate} }
func Submit() Action                         { return Action{Kind: ActSubmit} }
func Confirm() Action                        { return Action{Kind: ActConfirm} }
func Decline() Action                        { return Action{Kind: ActDecline} }
func Reload() Action                         { return Action{Kind: ActReload} }
func Delete(id string) Action                { return Action{Kind: ActDelete, ID: id} }
func ClearAll() Action                       { return Action{Kind: ActClearAll} }
func SetPage(p int) Action                   { return Action{Kind: ActSetPage, Page: p} }
func NextPage() Action                       { return Action{Kind: ActNextPage} }
func PrevPage() Action                       { return Action{Kind: ActPrevPage} }
func SetPerPage(n int) Action                { return Action{Kind: ActSetPerPage, Page: n} }
func LoadTemplate(id string) Action          { return Action{Kind: ActLoadTemplate, ID: id} }
func Download(f api.ExportFormat) Action     { return Action{Kind: ActDownload, Export: f} }
func Inspect(id string) Action               { return Action{Kind: ActInspect, ID: id} }
func CloseDetail() Action                    { return Action{Kind: ActCloseDetail} }
func DismissAlert() Action                   { return Action{Kind: ActDismissAlert} }
func DismissBanner() Action                  { return Action{Kind: ActDismissBanner} }
