package pipeline

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/toumix/tally/pkg/cache"
	"github.com/toumix/tally/pkg/diagram"
	"github.com/toumix/tally/pkg/functor"
)

// binding carries the resolved ansatz for one bind stage: the functor, a
// name for hooks and logs, and the profile that keys the circuit cache.
type binding struct {
	name    string
	profile functor.Profile
	custom  bool // set when the ansatz was supplied at runtime
	functor *functor.Functor
}

// newBinding resolves the ansatz from options. A runtime Ansatz wins over
// the profile; otherwise the profile file (or the default profile) is
// loaded and built.
func newBinding(opts Options) (*binding, error) {
	if opts.Ansatz != nil {
		f, err := functor.New(opts.Ansatz)
		if err != nil {
			return nil, err
		}
		return &binding{name: "custom", custom: true, functor: f}, nil
	}

	profile := functor.DefaultProfile()
	if opts.Profile != "" {
		p, err := functor.LoadProfile(opts.Profile)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	ansatz, err := profile.Build()
	if err != nil {
		return nil, err
	}
	f, err := functor.New(ansatz)
	if err != nil {
		return nil, err
	}
	return &binding{name: profile.Ansatz, profile: profile, functor: f}, nil
}

// cacheable reports whether the binding has a serializable identity. A
// runtime ansatz does not, so its circuits bypass the cache.
func (b *binding) cacheable() bool { return !b.custom }

// keyOpts builds the circuit cache key options. Only the fields of the
// selected ansatz participate, so a rotation profile with leftover iqp
// settings keys the same as a clean one.
func (b *binding) keyOpts(params []float64) cache.CircuitKeyOpts {
	opts := cache.CircuitKeyOpts{Ansatz: b.profile.Ansatz, Params: params}
	switch b.profile.Ansatz {
	case functor.AnsatzRotation:
		opts.Axis = b.profile.Rotation.Axis
	case functor.AnsatzIQP:
		opts.Width = b.profile.IQP.Width
		opts.Depth = b.profile.IQP.Depth
	}
	return opts
}

// resolveParams produces the parameter vector to bind: the explicit vector,
// seeded uniform draws from [0, 2π), or zeros.
func (b *binding) resolveParams(d *diagram.Diagram, opts Options) ([]float64, error) {
	switch {
	case opts.Params != nil:
		return slices.Clone(opts.Params), nil
	case opts.RandomParams:
		rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xfeedface))
		params := make([]float64, b.functor.NParams(d))
		for i := range params {
			params[i] = rng.Float64() * 2 * math.Pi
		}
		return params, nil
	default:
		return b.functor.ZeroParams(d), nil
	}
}
