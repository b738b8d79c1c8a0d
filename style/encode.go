package style

import (
	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/errors"
)

// EncodeAvailableSpace converts a typed available-space constraint back
// to its wire form. This is the only outbound length mapping: the measure
// callback bridge uses it to encode the constraint arguments handed to
// host callbacks. Round-tripping through DecodeAvailableSpace yields the
// original record.
func EncodeAvailableSpace(l Length) (RawLength, error) {
	switch l.Unit {
	case UnitPoints:
		return RawLength{Dim: TagPoints, Value: l.Value}, nil
	case UnitMinContent:
		return RawLength{Dim: TagMinContent}, nil
	case UnitMaxContent:
		return RawLength{Dim: TagMaxContent}, nil
	default:
		return RawLength{}, errors.InvalidInput(errors.PhaseDecode,
			"available space must be points, min-content or max-content, got "+l.Unit.String())
	}
}

// EncodeAvailableSize encodes a width/height pair of available-space
// constraints.
func EncodeAvailableSize(s stretchable.Size[Length]) (RawSize, error) {
	w, err := EncodeAvailableSpace(s.Width)
	if err != nil {
		return RawSize{}, err
	}
	h, err := EncodeAvailableSpace(s.Height)
	if err != nil {
		return RawSize{}, err
	}
	return RawSize{Width: w, Height: h}, nil
}
