package servo

import "sort"

// Key identifies a motor by its bus channel (1..3) and daisy-chain
// address.
type Key struct {
	Channel uint8 `json:"channel"`
	Address uint8 `json:"address"`
}

type motorState struct {
	connected bool
	active    bool
	model     string
}

// MotorInfo is a point-in-time view of one registry entry.
type MotorInfo struct {
	Key
	Model     string `json:"model"`
	Connected bool   `json:"connected"`
	Active    bool   `json:"active"`
}

// Motor is a bound handle to one registered motor. Binding marks the
// registry entry active; there is no unbind, the binding lives as long
// as the session.
type Motor struct {
	s   *Session
	key Key
}

// Key returns the (channel, address) pair the handle is bound to.
func (m *Motor) Key() Key { return m.key }

// Model returns the model name recorded at discovery time.
func (m *Motor) Model() string {
	m.s.mx.Lock()
	defer m.s.mx.Unlock()
	if st, ok := m.s.motors[m.key]; ok {
		return st.model
	}
	return UnknownModel
}

// Bind marks the motor at (channel, address) active and returns a handle
// for it. The motor must have been reported by a discovery scan.
func (s *Session) Bind(channel, address uint8) (*Motor, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	key := Key{Channel: channel, Address: address}
	st, ok := s.motors[key]
	if !ok || !st.connected {
		return nil, UnregisteredMotorError{Channel: channel, Address: address}
	}
	st.active = true
	return &Motor{s: s, key: key}, nil
}

// Motors returns a snapshot of the registry ordered by channel then
// address.
func (s *Session) Motors() []MotorInfo {
	s.mx.Lock()
	defer s.mx.Unlock()

	list := make([]MotorInfo, 0, len(s.motors))
	for key, st := range s.motors {
		list = append(list, MotorInfo{
			Key:       key,
			Model:     st.model,
			Connected: st.connected,
			Active:    st.active,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Channel != list[j].Channel {
			return list[i].Channel < list[j].Channel
		}
		return list[i].Address < list[j].Address
	})
	return list
}
