package functor

import (
	"slices"

	"github.com/toumix/tally/pkg/circuit"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/errors"
)

// Ansatz is the box policy a functor applies: how many parameters each box
// consumes and which gate it becomes. Arity must be a pure function of the
// box; the functor calls it once while counting and once while binding and
// relies on both answers agreeing.
type Ansatz interface {
	// QubitsPerWire reports how many qubits one diagram wire stands for
	// in the circuits this ansatz produces.
	QubitsPerWire() int
	// Arity returns the number of parameters the box consumes.
	Arity(b diagram.Box) int
	// Bind turns a box and its parameter run into a gate with the same
	// wire topology.
	Bind(b diagram.Box, params []float64) (circuit.Gate, error)
}

// Rotation axes accepted by [RotationAnsatz].
const (
	AxisX = "x"
	AxisY = "y"
	AxisZ = "z"
)

// RotationAnsatz binds every box to a single-axis rotation gate taking
// exactly one parameter, so a diagram wants as many parameters as it has
// boxes. The zero value rotates about the x axis.
type RotationAnsatz struct {
	Axis string // AxisX, AxisY or AxisZ; empty means AxisX
}

// QubitsPerWire returns 1: rotation circuits act on one qubit per wire.
func (a RotationAnsatz) QubitsPerWire() int { return 1 }

// Arity returns 1 for every box.
func (a RotationAnsatz) Arity(diagram.Box) int { return 1 }

// Bind maps the box to an rx, ry or rz gate on the same wire run.
func (a RotationAnsatz) Bind(b diagram.Box, params []float64) (circuit.Gate, error) {
	axis := a.Axis
	if axis == "" {
		axis = AxisX
	}
	switch axis {
	case AxisX, AxisY, AxisZ:
	default:
		return circuit.Gate{}, errors.New(errors.ErrCodeInvalidInput,
			"unknown rotation axis %q", a.Axis)
	}
	if len(params) != 1 {
		return circuit.Gate{}, errors.New(errors.ErrCodeParameterCountMismatch,
			"rotation gate wants 1 parameter, got %d", len(params))
	}
	return circuit.Gate{
		Name:   "r" + axis,
		Pos:    b.Pos,
		In:     b.In,
		Out:    b.Out,
		Params: slices.Clone(params),
	}, nil
}

// IQPAnsatz binds every box to a composite iqp gate. Each wire stands for
// Width qubits, so a box over n wires covers n*Width qubits and consumes
// Depth*(n*Width-1) parameters, one run of n*Width-1 values per round.
// QASM export decomposes the gate into Hadamard and controlled-RZ moments.
type IQPAnsatz struct {
	Width int // qubits per wire, at least 1
	Depth int // parameter rounds, at least 1
}

// QubitsPerWire returns the configured width, at least 1.
func (a IQPAnsatz) QubitsPerWire() int { return max(a.Width, 1) }

// Arity returns Depth*(In*Width-1), clamped at zero.
func (a IQPAnsatz) Arity(b diagram.Box) int {
	return max(a.Depth, 0) * max(b.In*a.QubitsPerWire()-1, 0)
}

// Bind maps the box to an iqp gate carrying its parameter run.
func (a IQPAnsatz) Bind(b diagram.Box, params []float64) (circuit.Gate, error) {
	if want := a.Arity(b); len(params) != want {
		return circuit.Gate{}, errors.New(errors.ErrCodeParameterCountMismatch,
			"iqp gate over %d wires wants %d parameters, got %d", b.In, want, len(params))
	}
	return circuit.Gate{
		Name:   circuit.GateIQP,
		Pos:    b.Pos,
		In:     b.In,
		Out:    b.Out,
		Params: slices.Clone(params),
	}, nil
}
