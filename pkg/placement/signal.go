package placement

// SignalKind identifies a page or pointer event.
type SignalKind int

const (
	Scroll SignalKind = iota
	Resize
	Mutation
	PointerDown
	PointerMove
	PointerUp
	Enable
	Disable
)

var signalNames = []string{"scroll", "resize", "mutation", "pointerdown", "pointermove", "pointerup", "enable", "disable"}

func (k SignalKind) String() string {
	if int(k) >= 0 && int(k) < len(signalNames) {
		return signalNames[k]
	}
	return "unknown"
}

// ParseSignalKind maps an event name to its kind.
func ParseSignalKind(name string) (SignalKind, bool) {
	for i, n := range signalNames {
		if n == name {
			return SignalKind(i), true
		}
	}
	return 0, false
}

// Signal is one event delivered to the engine. At is set for pointer
// signals and is in viewport coordinates.
type Signal struct {
	Kind SignalKind
	At   Point
}
