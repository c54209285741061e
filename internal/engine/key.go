package engine

import (
	"strings"
)

// Key is the (account, period) aggregation key. Account ids are validated not to
// contain the separator, so the composite stays unambiguous.
type Key string

const keySeparator = "|"

func NewKey(account, period string) Key {
	return Key(account + keySeparator + period)
}

func (k Key) Account() string {
	account, _, _ := strings.Cut(string(k), keySeparator)
	return account
}

func (k Key) Period() string {
	_, period, _ := strings.Cut(string(k), keySeparator)
	return period
}
