package editor

// State is the editor's pointer state.
type State uint8

const (
	// Idle means no drawable is in progress; the tool preview follows the pointer.
	Idle State = iota
	// Drawing means the most recent drawable is being extended.
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Invalidation tells a host which kind of repaint a transition needs.
type Invalidation uint8

const (
	// InvalidateFull asks for the display list to be repainted.
	InvalidateFull Invalidation = iota
	// InvalidatePreview asks for the display list plus the active tool's preview.
	InvalidatePreview
)

func (i Invalidation) String() string {
	switch i {
	case InvalidateFull:
		return "full"
	case InvalidatePreview:
		return "preview"
	default:
		return "unknown"
	}
}
