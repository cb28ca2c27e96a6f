package events

import "time"

type EventType string

const (
	UserRegistered  EventType = "user.registered"
	UserLogin       EventType = "user.login"
	UserLoginFailed EventType = "user.login_failed"
)

type AuthEvent struct {
	Type      EventType
	UserID    int64
	Email     string
	Timestamp time.Time
	IP        string
	UserAgent string

	Browser      string
	OS           string
	DeviceType   string
	NetworkScope string
}

// Fields flattens the event into stream entry values. Empty optional fields
// are omitted.
func (e *AuthEvent) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"type":      string(e.Type),
		"email":     e.Email,
		"timestamp": e.Timestamp.UnixMilli(),
	}

	if e.UserID != 0 {
		fields["user_id"] = e.UserID
	}

	optional := map[string]string{
		"ip":            e.IP,
		"user_agent":    e.UserAgent,
		"browser":       e.Browser,
		"os":            e.OS,
		"device_type":   e.DeviceType,
		"network_scope": e.NetworkScope,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}

	return fields
}
