package socketio_utils

// Payload is the free-form first argument of every command. These helpers
// keep the handlers from repeating type assertions.
type Payload map[string]interface{}

// ParsePayload extracts the command payload from raw socket.io args.
func ParsePayload(args []interface{}) (Payload, bool) {
	if len(args) < 1 {
		return nil, false
	}
	payload, ok := args[0].(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Payload(payload), true
}

func (p Payload) String(key string) (string, bool) {
	value, ok := p[key].(string)
	return value, ok
}

// Int reads a numeric field. JSON numbers arrive as float64.
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func (p Payload) Bool(key string) bool {
	value, _ := p[key].(bool)
	return value
}
