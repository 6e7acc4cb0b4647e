package notifier

import "errors"

var errNoAddress = errors.New("notifier: contact has no address for this channel")
