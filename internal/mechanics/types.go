package mechanics

import (
	"errors"

	"github.com/roach88/rotorgraph/internal/model"
)

// Sentinel errors for graph operations.
var (
	// ErrNodeNotFound indicates an edge referenced a handle outside the arena.
	ErrNodeNotFound = errors.New("mechanics: node not found")

	// ErrNoPath indicates the target cannot be reached from the source.
	ErrNoPath = errors.New("mechanics: no path to target")

	// ErrNegativeCost indicates the cost function returned a negative value.
	ErrNegativeCost = errors.New("mechanics: negative edge cost")

	// ErrNoMechanics indicates nothing is cached for the machine.
	ErrNoMechanics = errors.New("mechanics: machine not assembled")
)

// NodeID is a stable handle into a Graph's node arena.
type NodeID int

// EdgeID is a stable handle into a Graph's edge arena.
type EdgeID int

// Fixed handles present in every assembled Mechanics.
const (
	GenesisID  NodeID = 0
	CompleteID NodeID = 1
)

// NodePart is the role of a node.
type NodePart int

const (
	NodeGenesis NodePart = iota
	NodeInfinity
	NodeRotorPort
	NodeReflectorPort
	NodePlugboardPort
)

func (p NodePart) String() string {
	switch p {
	case NodeGenesis:
		return "genesis"
	case NodeInfinity:
		return "infinity"
	case NodeRotorPort:
		return "rotor"
	case NodeReflectorPort:
		return "reflector"
	case NodePlugboardPort:
		return "plugboard"
	default:
		return "unknown"
	}
}

// EdgePart is the role of an edge.
type EdgePart int

const (
	// EdgeKeyboard joins genesis to a plugboard entry port.
	EdgeKeyboard EdgePart = iota
	// EdgePlugboard joins a plugboard entry port to the enter rotor.
	EdgePlugboard
	// EdgeCrosswire is a wire inside a rotor; the only edge with cost.
	EdgeCrosswire
	// EdgeLink joins two adjacent rotors.
	EdgeLink
	// EdgeReflector joins the innermost rotors through a reflector port.
	EdgeReflector
	// EdgeGateway joins the exit rotor to a plugboard exit port.
	EdgeGateway
	// EdgeLightboard joins a plugboard exit port to infinity.
	EdgeLightboard
)

func (p EdgePart) String() string {
	switch p {
	case EdgeKeyboard:
		return "keyboard"
	case EdgePlugboard:
		return "plugboard"
	case EdgeCrosswire:
		return "crosswire"
	case EdgeLink:
		return "link"
	case EdgeReflector:
		return "reflector"
	case EdgeGateway:
		return "gateway"
	case EdgeLightboard:
		return "lightboard"
	default:
		return "unknown"
	}
}

// Side distinguishes a rotor's left and right contacts.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Plugboard levels.
const (
	LevelEntry = 1
	LevelExit  = 2
)

// Node is one vertex of the signal graph.
type Node struct {
	ID   NodeID
	Part NodePart

	// Owner is the id of the machine, rotor, reflector or plugboard the node
	// belongs to.
	Owner string

	// Rotor and reflector ports.
	Side     Side
	Index    int // 0-based port position, aligned with combination ordinal
	Reversed bool

	// Plugboard ports.
	Level       int
	Combination *model.Combination
}

// Letter returns the node's combination letter, or "".
func (n Node) Letter() string {
	if n.Combination == nil {
		return ""
	}
	return n.Combination.Letter
}

// Edge is one directed connection of the signal graph.
type Edge struct {
	ID   EdgeID
	From NodeID
	To   NodeID
	Part EdgePart

	// Length is the crosswire weight. Ignored by DefaultCost for other parts.
	Length float64

	// Direction is false for right-to-left (outbound) and true for
	// left-to-right (inbound) traversal.
	Direction bool

	// Crosswire and reflector edges.
	Crosswire    string
	InPortOrder  int
	OutPortOrder int

	// Link edges.
	InCrosswireOrder  int
	OutCrosswireOrder int

	// Keyboard and lightboard edges carry the letter they stand for;
	// plugboard and gateway edges carry both ends of the plug.
	Combination     *model.Combination
	FromCombination *model.Combination
	ToCombination   *model.Combination
}

// CostFunc returns the traversal cost of an edge. Must be non-negative.
type CostFunc func(e Edge) float64

// DefaultCost charges crosswire edges their Length and everything else 0.
func DefaultCost(e Edge) float64 {
	if e.Part == EdgeCrosswire {
		return e.Length
	}
	return 0
}
