package entity

import (
	"errors"
	"fmt"

	"github.com/urmzd/homai-supla/pkg/supla"
)

// ErrUnsupportedFunction indicates no entity kind exists for a channel function.
var ErrUnsupportedFunction = errors.New("unsupported channel function")

// New creates the entity matching the record's channel function.
func New(rec ChannelRecord, servers ServerLookup) (Entity, error) {
	var (
		e   Entity
		err error
	)
	switch fn := rec.Channel.FunctionName(); fn {
	case supla.FunctionControllingTheRollerShutter:
		var r *RollerShutter
		r, err = NewRollerShutter(rec, servers)
		e = r
	case supla.FunctionControllingTheGate, supla.FunctionControllingTheGarageDoor:
		var g *Gate
		g, err = NewGate(rec, servers)
		e = g
	case supla.FunctionLightSwitch, supla.FunctionPowerSwitch:
		var s *Switch
		s, err = NewSwitch(rec, servers)
		e = s
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFunction, fn)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
