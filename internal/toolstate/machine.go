package toolstate

// Mode is derived from the active tool and the enabled flag.
type Mode int

const (
	Idle Mode = iota
	Drawing
	Texting
)

func (m Mode) String() string {
	switch m {
	case Drawing:
		return "drawing"
	case Texting:
		return "texting"
	}
	return "idle"
}

// State is the complete tool state of one engine.
type State struct {
	Enabled bool
	Active  Tool
	Mode    Mode
}

// CanDraw reports whether a pointer press may start a stroke.
func (s State) CanDraw() bool { return s.Mode == Drawing }

// CanType reports whether a pointer press may open a text field.
func (s State) CanType() bool { return s.Mode == Texting && s.Enabled }

func deriveMode(enabled bool, active Tool) Mode {
	switch {
	case active == Text:
		return Texting
	case enabled && active != None:
		return Drawing
	}
	return Idle
}

// Machine owns a State and is the only way to change it.
type Machine struct {
	st State
}

// NewMachine returns a machine in the initial Idle state with no tool selected.
func NewMachine() *Machine {
	return &Machine{}
}

// State returns a copy of the current state.
func (m *Machine) State() State { return m.st }

// SetActiveTool selects t and enables the machine.
func (m *Machine) SetActiveTool(t Tool) State {
	m.st.Active = t
	m.st.Enabled = true
	m.st.Mode = deriveMode(m.st.Enabled, m.st.Active)
	return m.st
}

// ToggleEnabled flips the enabled flag and returns the new value.
func (m *Machine) ToggleEnabled() bool {
	m.st.Enabled = !m.st.Enabled
	m.st.Mode = deriveMode(m.st.Enabled, m.st.Active)
	return m.st.Enabled
}

// Style returns the live style of the active tool.
func (m *Machine) Style() (Style, bool) {
	return QueryStyle(m.st.Active)
}
