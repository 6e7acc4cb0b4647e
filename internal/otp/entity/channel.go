package entity

import (
	"strings"

	"github.com/samber/lo"
)

// Channel is the delivery medium of a code. The numeric values are stored in
// otps.channel.
type Channel int16

const (
	ChannelUnknown       Channel = 0
	ChannelEmail         Channel = 1
	ChannelSMS           Channel = 2
	ChannelAuthenticator Channel = 3
)

var channelNames = map[Channel]string{
	ChannelEmail:         "email",
	ChannelSMS:           "sms",
	ChannelAuthenticator: "authenticator",
}

var channelByName = lo.Invert(channelNames)

func (c Channel) String() string {
	if name, ok := channelNames[c]; ok {
		return name
	}
	return "unknown"
}

func (c Channel) IsValid() bool {
	_, ok := channelNames[c]
	return ok
}

// ParseChannel maps the wire name to a Channel. An empty name selects email.
func ParseChannel(name string) (Channel, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ChannelEmail, true
	}
	c, ok := channelByName[name]
	return c, ok
}

// ChannelNames lists the accepted wire names in a stable order.
func ChannelNames() []string {
	return []string{ChannelEmail.String(), ChannelSMS.String(), ChannelAuthenticator.String()}
}
