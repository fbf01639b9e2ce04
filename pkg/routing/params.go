package routing

import "strconv"

// Params holds the typed path parameters extracted for one page. Values
// are string, int, or float64 according to the page's declared ParamTypes.
type Params map[string]any

// GetString returns the named parameter as a string, or "" if absent or
// not a string.
func (p Params) GetString(name string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return ""
}

// GetInt returns the named parameter as an int, or 0 if absent or not an
// int.
func (p Params) GetInt(name string) int {
	if v, ok := p[name].(int); ok {
		return v
	}
	return 0
}

// GetFloat returns the named parameter as a float64, or 0 if absent or not
// a float. Int parameters are widened.
func (p Params) GetFloat(name string) float64 {
	switch v := p[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// coerceParams converts raw captures to their declared types. A failed
// coercion disqualifies the candidate page, not the whole match.
func coerceParams(raw map[string]string, types map[string]ParamType) (Params, bool) {
	if len(raw) == 0 {
		return nil, true
	}

	params := make(Params, len(raw))
	for name, value := range raw {
		switch types[name] {
		case ParamInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, false
			}
			params[name] = n

		case ParamFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, false
			}
			params[name] = f

		default:
			params[name] = value
		}
	}
	return params, true
}
