package shell

// ActionID names a menu action. The toolkit layer registers one action per
// ID and routes activations back through Controller.Dispatch.
type ActionID string

const (
	ActionPresenceUpdate ActionID = "presence.update"
	ActionPresenceToggle ActionID = "presence.toggle"
	ActionTemplateOpen   ActionID = "template.open"
	ActionTemplateCopy   ActionID = "template.copy-url"
	ActionUserextsOpen   ActionID = "userexts.open"
	ActionUserextsWatch  ActionID = "userexts.watch"
	ActionDevTools       ActionID = "devtools.toggle"
)

// MenuItem is one entry of a menu group.
type MenuItem struct {
	Label  string
	Action ActionID
	// Checkbox items carry a boolean state, read from Controller.Checked.
	Checkbox bool
	Accels   []string
}

// MenuGroup is a top-level menu.
type MenuGroup struct {
	Label string
	Items []MenuItem
}

// Menu returns the menu tree in display order.
func Menu() []MenuGroup {
	return []MenuGroup{
		{
			Label: "Rich Presence",
			Items: []MenuItem{
				{Label: "Update", Action: ActionPresenceUpdate},
				{Label: "Toggle", Action: ActionPresenceToggle, Checkbox: true},
			},
		},
		{
			Label: "Template",
			Items: []MenuItem{
				{Label: "Open template from clipboard", Action: ActionTemplateOpen, Accels: []string{"<Control><Shift>v"}},
				{Label: "Copy URL to Clipboard", Action: ActionTemplateCopy, Accels: []string{"<Control><Shift>c"}},
			},
		},
		{
			Label: "Developer",
			Items: []MenuItem{
				{Label: "Open userexts Folder", Action: ActionUserextsOpen},
				{Label: "Reload on userexts change", Action: ActionUserextsWatch, Checkbox: true},
				{Label: "Toggle Developer Tools", Action: ActionDevTools, Accels: []string{"F12", "<Control><Shift>i"}},
			},
		},
	}
}
