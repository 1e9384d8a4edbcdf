package supla

// Function is the name of the function assigned to a channel in the Supla Cloud.
type Function string

// Channel functions known to this integration. Any other value is passed
// through unchanged and treated as unsupported by discovery.
const (
	FunctionNone                        Function = "NONE"
	FunctionControllingTheRollerShutter Function = "CONTROLLINGTHEROLLERSHUTTER"
	FunctionControllingTheGate          Function = "CONTROLLINGTHEGATE"
	FunctionControllingTheGarageDoor    Function = "CONTROLLINGTHEGARAGEDOOR"
	FunctionLightSwitch                 Function = "LIGHTSWITCH"
	FunctionPowerSwitch                 Function = "POWERSWITCH"
)

// Include selects optional field groups returned with a channel.
type Include string

const (
	IncludeIODevice  Include = "iodevice"
	IncludeConnected Include = "connected"
	IncludeState     Include = "state"
)

// Actions understood by the channel execute endpoint.
const (
	ActionReveal    = "REVEAL"
	ActionShut      = "SHUT"
	ActionStop      = "STOP"
	ActionOpenClose = "OPEN_CLOSE"
	ActionTurnOn    = "TURN_ON"
	ActionTurnOff   = "TURN_OFF"
)

// ServerInfo is the response of the server-info endpoint.
type ServerInfo struct {
	Authenticated bool           `json:"authenticated"`
	Data          map[string]any `json:"data,omitempty"`
}

// Channel is a channel as returned by the Supla Cloud API.
type Channel struct {
	ID            int              `json:"id"`
	ChannelNumber int              `json:"channelNumber"`
	Caption       string           `json:"caption,omitempty"`
	Function      *ChannelFunction `json:"function,omitempty"`
	IODevice      *IODevice        `json:"iodevice,omitempty"`
	IODeviceID    int              `json:"iodeviceId,omitempty"`
	Connected     *bool            `json:"connected,omitempty"`
	State         *ChannelState    `json:"state,omitempty"`
}

// FunctionName returns the channel's function name, or FunctionNone when the
// function group was not included.
func (c *Channel) FunctionName() Function {
	if c == nil || c.Function == nil || c.Function.Name == "" {
		return FunctionNone
	}
	return c.Function.Name
}

// ChannelFunction describes the function assigned to a channel.
type ChannelFunction struct {
	ID      int      `json:"id"`
	Name    Function `json:"name"`
	Caption string   `json:"caption,omitempty"`
}

// IODevice is the physical device exposing the channel.
type IODevice struct {
	ID         int    `json:"id"`
	GUIDString string `json:"gUIDString"`
	Name       string `json:"name,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// ChannelState holds the last reported state of a channel. Which fields are
// set depends on the channel function.
type ChannelState struct {
	Connected *bool `json:"connected,omitempty"`
	On        *bool `json:"on,omitempty"`
	Hi        *bool `json:"hi,omitempty"`
	Shut      *int  `json:"shut,omitempty"`
}
