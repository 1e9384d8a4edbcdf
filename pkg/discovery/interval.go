package discovery

import "time"

const (
	// CallLimit is the hourly API call budget spread over a server's
	// channels. Public servers allow 1000 calls per hour; the budget keeps
	// some room for calculation differences.
	CallLimit = 950

	// ScanInterval is the base polling tick. Update intervals are rounded
	// up to a multiple of it.
	ScanInterval = 10 * time.Second
)

// UpdateInterval returns the polling interval for a server with the given
// number of channels. A configured interval replaces the computed
// ceil(3600*channels/CallLimit) seconds. The result is rounded up to the
// next multiple of ScanInterval and is never shorter than one tick.
func UpdateInterval(channels int, configured *time.Duration) time.Duration {
	var d time.Duration
	if configured != nil {
		d = *configured
	} else {
		secs := (3600*channels + CallLimit - 1) / CallLimit
		d = time.Duration(secs) * time.Second
	}
	return roundUp(d, ScanInterval)
}

func roundUp(d, tick time.Duration) time.Duration {
	if d <= 0 {
		return tick
	}
	return (d + tick - 1) / tick * tick
}
