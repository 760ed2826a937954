package common

// Local storage keys shared by the session manager, the device
// fingerprinter and the auth facade. The names are kept identical to the
// browser build so a dump of one store can be read against the other.
const (
	SessionKey  = "dri_session"
	UserKey     = "dri_user"
	DeviceIDKey = "device_id"
)

// Table names on the hosted table-store gateway.
const (
	TableUsers    = "usuarios"
	TableCodes    = "codigos_verificacao"
	TableSessions = "sessoes"
)
