package functor

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/toumix/tally/pkg/errors"
)

// Ansatz names accepted in a [Profile].
const (
	AnsatzRotation = "rotation"
	AnsatzIQP      = "iqp"
)

// Profile selects and configures an ansatz. It is the TOML shape the CLI
// and the pipeline load from disk:
//
//	ansatz = "iqp"
//
//	[rotation]
//	axis = "y"
//
//	[iqp]
//	width = 2
//	depth = 3
type Profile struct {
	Ansatz   string          `toml:"ansatz"`
	Rotation RotationProfile `toml:"rotation"`
	IQP      IQPProfile      `toml:"iqp"`
}

// RotationProfile configures [RotationAnsatz].
type RotationProfile struct {
	Axis string `toml:"axis"`
}

// IQPProfile configures [IQPAnsatz].
type IQPProfile struct {
	Width int `toml:"width"`
	Depth int `toml:"depth"`
}

// DefaultProfile returns the profile used when no file is given: one rx
// rotation per box.
func DefaultProfile() Profile {
	return Profile{
		Ansatz:   AnsatzRotation,
		Rotation: RotationProfile{Axis: AxisX},
		IQP:      IQPProfile{Width: 1, Depth: 1},
	}
}

// LoadProfile reads a TOML profile from path and validates it. Fields not
// present in the file keep their [DefaultProfile] values.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read profile %s", path)
	}
	p := DefaultProfile()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse profile %s", path)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the profile without building an ansatz. Violations are
// INVALID_PROFILE errors naming the offending field.
func (p Profile) Validate() error {
	switch p.Ansatz {
	case AnsatzRotation:
		switch p.Rotation.Axis {
		case "", AxisX, AxisY, AxisZ:
		default:
			return errors.New(errors.ErrCodeInvalidProfile,
				"unknown rotation axis %q", p.Rotation.Axis)
		}
	case AnsatzIQP:
		if p.IQP.Width < 1 {
			return errors.New(errors.ErrCodeInvalidProfile,
				"iqp width must be at least 1, got %d", p.IQP.Width)
		}
		if p.IQP.Depth < 1 {
			return errors.New(errors.ErrCodeInvalidProfile,
				"iqp depth must be at least 1, got %d", p.IQP.Depth)
		}
	default:
		return errors.New(errors.ErrCodeInvalidProfile, "unknown ansatz %q", p.Ansatz)
	}
	return nil
}

// Build turns the profile into the ansatz it describes.
func (p Profile) Build() (Ansatz, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Ansatz == AnsatzIQP {
		return IQPAnsatz{Width: p.IQP.Width, Depth: p.IQP.Depth}, nil
	}
	return RotationAnsatz{Axis: p.Rotation.Axis}, nil
}
