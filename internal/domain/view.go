package domain

// BackToListToken is the reserved control token that returns the user from a
// detail view to the overview. Asset ids never collide with it because the
// provider's ids are plain lowercase slugs.
const BackToListToken = "back-to-list"

// ViewKind enumerates the states the visible message can be in.
type ViewKind int

const (
	ViewIdle ViewKind = iota
	ViewOverview
	ViewDetail
)

// ViewMode is the explicit view state returned alongside every reply,
// carrying the asset id when the view is a detail view.
type ViewMode struct {
	Kind  ViewKind
	Asset AssetID
}

func IdleMode() ViewMode             { return ViewMode{Kind: ViewIdle} }
func OverviewMode() ViewMode         { return ViewMode{Kind: ViewOverview} }
func DetailMode(id AssetID) ViewMode { return ViewMode{Kind: ViewDetail, Asset: id} }

// Control is one interactive button: a human label paired with the opaque
// token the transport reports back when it is pressed.
type Control struct {
	Label string
	Token string
}

// Reply is a render instruction for the transport: message text in the
// constrained markdown subset plus optional controls.
type Reply struct {
	Text     string
	Controls []Control
}

// Event is an inbound chat event, decoded once at the transport boundary.
type Event interface {
	event()
}

// StartRequested is the initial greeting command. Name carries the user's
// display name when the transport knows it.
type StartRequested struct {
	Name string
}

// ListRequested asks for a fresh ranked overview.
type ListRequested struct{}

// AssetSelected is a press on an asset button in the overview.
type AssetSelected struct {
	ID AssetID
}

// BackToList is a press on the back button in a detail view.
type BackToList struct{}

// UnknownCommand is any text command the bot does not understand.
type UnknownCommand struct {
	Text string
}

func (StartRequested) event() {}
func (ListRequested) event()  {}
func (AssetSelected) event()  {}
func (BackToList) event()     {}
func (UnknownCommand) event() {}
