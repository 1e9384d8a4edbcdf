package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urmzd/homai-supla/pkg/supla"
)

// ErrMissingDevice indicates a channel was fetched without its iodevice group,
// so no identity can be derived for it.
var ErrMissingDevice = errors.New("channel has no iodevice")

// Category is the host entity category a channel is loaded as.
type Category string

const (
	CategoryCover  Category = "cover"
	CategorySwitch Category = "switch"
)

// ChannelRecord is a fetched channel combined with the fields discovery
// derives for it. It is a value: a refresh builds a new record instead of
// modifying the old one.
type ChannelRecord struct {
	Channel        supla.Channel
	ServerName     string
	UpdateInterval time.Duration
}

// NewChannelRecord stamps a fetched channel with its server and interval.
func NewChannelRecord(ch supla.Channel, serverName string, interval time.Duration) ChannelRecord {
	return ChannelRecord{
		Channel:        ch,
		ServerName:     serverName,
		UpdateInterval: interval,
	}
}

// UniqueID derives the entity identity of a channel from its device GUID and
// channel number. It does not depend on state fields.
func UniqueID(ch supla.Channel) (string, error) {
	if ch.IODevice == nil || ch.IODevice.GUIDString == "" {
		return "", fmt.Errorf("%w: channel %d", ErrMissingDevice, ch.ID)
	}
	return fmt.Sprintf("supla-%s-%d", strings.ToLower(ch.IODevice.GUIDString), ch.ChannelNumber), nil
}
