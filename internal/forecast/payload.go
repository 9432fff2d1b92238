package forecast

import "bytes"

// Payload is the raw hourly forecast exactly as the weather provider
// returned it. The provider's field set is not contractually fixed, so the
// payload is passed through verbatim; only presence is ever checked here.
type Payload []byte

// MarshalJSON returns p verbatim.
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON stores the raw bytes without interpreting them.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = append((*p)[0:0], data...)
	return nil
}

// Empty reports whether the payload is absent. JSON null counts as absent.
func (p Payload) Empty() bool {
	trimmed := bytes.TrimSpace(p)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
