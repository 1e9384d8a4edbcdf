// Package discovery turns the channels of every registered server into
// entity records grouped by host category. It runs once at startup;
// channels added on a server later need a restart to show up.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/homai-supla/pkg/entity"
	"github.com/urmzd/homai-supla/pkg/registry"
	"github.com/urmzd/homai-supla/pkg/supla"
)

// Source is the tag passed to the host loader.
const Source = "supla"

// ErrDuplicateIdentity indicates two channels map to the same entity identity.
var ErrDuplicateIdentity = errors.New("duplicate entity identity")

// Loader is the host mechanism that turns records into entities. It is
// called once per category with every record of that category.
type Loader interface {
	LoadPlatform(ctx context.Context, category entity.Category, source string, records []entity.ChannelRecord, hostConfig any) error
}

// CategoryFor maps a channel function to a host entity category. ok is
// false for NONE and for functions this integration does not model.
func CategoryFor(fn supla.Function) (entity.Category, bool) {
	switch fn {
	case supla.FunctionControllingTheRollerShutter,
		supla.FunctionControllingTheGate,
		supla.FunctionControllingTheGarageDoor:
		return entity.CategoryCover, true
	case supla.FunctionLightSwitch, supla.FunctionPowerSwitch:
		return entity.CategorySwitch, true
	default:
		return "", false
	}
}

// Skipped is a channel left out of discovery.
type Skipped struct {
	Server    string
	ChannelID int
	Function  supla.Function
	Reason    string
}

// Result summarizes a discovery run.
type Result struct {
	Groups      map[entity.Category][]entity.ChannelRecord
	Intervals   map[string]time.Duration
	Ignored     []Skipped // function NONE
	Unsupported []Skipped // function without a category
}

// Count returns the number of records across all categories.
func (r *Result) Count() int {
	n := 0
	for _, recs := range r.Groups {
		n += len(recs)
	}
	return n
}

// Categories returns the discovered categories in sorted order.
func (r *Result) Categories() []entity.Category {
	cats := make([]entity.Category, 0, len(r.Groups))
	for c := range r.Groups {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Scan lists the channels of every registered server and builds the
// records to load. It resolves each server's update interval in reg.
func Scan(ctx context.Context, reg *registry.Registry) (*Result, error) {
	res := &Result{
		Groups:    make(map[entity.Category][]entity.ChannelRecord),
		Intervals: make(map[string]time.Duration),
	}
	owners := make(map[string]string)

	for _, name := range reg.Names() {
		h, err := reg.Server(name)
		if err != nil {
			return nil, err
		}

		channels, err := h.Client.ListChannels(ctx, supla.IncludeIODevice, supla.IncludeConnected, supla.IncludeState)
		if err != nil {
			return nil, fmt.Errorf("list channels on %s: %w", name, err)
		}

		interval := UpdateInterval(len(channels), h.ScanInterval)
		if err := reg.ResolveUpdateInterval(name, interval); err != nil {
			return nil, err
		}
		res.Intervals[name] = interval

		log.Debug().
			Str("server", name).
			Int("channels", len(channels)).
			Dur("interval", interval).
			Msgf("Current update interval for server %s is %.0f seconds", name, interval.Seconds())

		for _, ch := range channels {
			fn := ch.FunctionName()
			if fn == supla.FunctionNone {
				log.Debug().Str("function", string(fn)).Int("channel_id", ch.ID).Msg("Ignored function")
				res.Ignored = append(res.Ignored, Skipped{Server: name, ChannelID: ch.ID, Function: fn, Reason: "no function"})
				continue
			}

			category, ok := CategoryFor(fn)
			if !ok {
				log.Warn().Str("function", string(fn)).Int("channel_id", ch.ID).Msg("Unsupported function")
				res.Unsupported = append(res.Unsupported, Skipped{Server: name, ChannelID: ch.ID, Function: fn, Reason: "unsupported function"})
				continue
			}

			uid, err := entity.UniqueID(ch)
			if err != nil {
				log.Warn().Err(err).Int("channel_id", ch.ID).Msg("Channel without device")
				res.Unsupported = append(res.Unsupported, Skipped{Server: name, ChannelID: ch.ID, Function: fn, Reason: "no device"})
				continue
			}
			owner := fmt.Sprintf("channel %d on %s", ch.ID, name)
			if prev, dup := owners[uid]; dup {
				return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateIdentity, uid, prev, owner)
			}
			owners[uid] = owner

			res.Groups[category] = append(res.Groups[category], entity.NewChannelRecord(ch, name, interval))
		}
	}

	return res, nil
}

// Discover scans every registered server and hands each category's records
// to the loader exactly once.
func Discover(ctx context.Context, reg *registry.Registry, loader Loader, hostConfig any) (*Result, error) {
	res, err := Scan(ctx, reg)
	if err != nil {
		return nil, err
	}

	for _, category := range res.Categories() {
		records := res.Groups[category]
		log.Info().Str("category", string(category)).Int("entities", len(records)).Msg("Loading platform")
		if err := loader.LoadPlatform(ctx, category, Source, records, hostConfig); err != nil {
			return nil, fmt.Errorf("load %s platform: %w", category, err)
		}
	}

	return res, nil
}
