package functor_test

import (
	"fmt"
	"strings"

	"github.com/toumix/tally/pkg/composition"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/functor"
)

func ExampleFunctor_Apply() {
	cell, _ := composition.Parse("((e | e) & (e | e))")
	d, _ := diagram.FromComposition(cell)

	f, _ := functor.New(functor.RotationAnsatz{Axis: functor.AxisX})
	fmt.Println(f.NParams(d), "parameters")

	c, _ := f.Apply(d, []float64{0.1, 0.2, 0.3, 0.4})
	var names []string
	for _, g := range c.Gates() {
		names = append(names, g.Name)
	}
	fmt.Println(strings.Join(names, " "))
	fmt.Println(c.Params())
	// Output:
	// 4 parameters
	// rx rx rx rx
	// [0.1 0.2 0.3 0.4]
}

func ExampleIQPAnsatz() {
	cell, _ := composition.Parse("(e & e)")
	d, _ := diagram.FromComposition(cell)

	f, _ := functor.New(functor.IQPAnsatz{Width: 3, Depth: 2})
	fmt.Println(f.NParams(d), "parameters over", d.Width()*3, "qubits")
	// Output: 8 parameters over 3 qubits
}
