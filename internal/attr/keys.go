package attr

// Key names an attribute.
type Key string

// Well-known attribute keys.
const (
	KeyClass          Key = "class"
	KeyAccount        Key = "account"
	KeyService        Key = "service"
	KeyServer         Key = "server"
	KeyProtocol       Key = "protocol"
	KeySynchronizable Key = "synchronizable"
	KeyAccessGroup    Key = "access-group"
	KeyValueData      Key = "value-data"

	// KeyMatchLimit bounds the number of records a query may match.
	KeyMatchLimit Key = "match-limit"

	// KeyReturnData asks a query to return the stored payload.
	KeyReturnData Key = "return-data"
)

// Well-known tag values.
const (
	ClassGenericPassword  = "generic-password"
	ClassInternetPassword = "internet-password"

	ProtocolHTTPS = "https"

	// MatchLimitOne is the KeyMatchLimit value
	// that restricts a query to a single record.
	MatchLimitOne = "one"
)

// Directive reports whether the key shapes a query
// instead of describing a record.
// Directives are never stored and never take part in matching.
func (k Key) Directive() bool {
	return k == KeyMatchLimit || k == KeyReturnData
}
