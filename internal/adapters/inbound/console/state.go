package console

// State is a dispatcher state.
type State int

const (
	MainMenu State = iota
	AddMenu
	Terminated
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case AddMenu:
		return "add_menu"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Main menu choices.
const (
	choiceAdd       = "1"
	choiceList      = "2"
	choiceSell      = "3"
	choiceConfigure = "4"
	choiceExit      = "5"
)

// Add menu choices. Anything else returns to the main menu.
const (
	choiceManual    = "1"
	choiceAutomatic = "2"
)
