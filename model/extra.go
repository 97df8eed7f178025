package model

import (
	"encoding/json"
	"slices"
)

// splitExtra returns the members of a JSON object whose keys are not in
// known, or nil when there are none.
func splitExtra(data []byte, known []string) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	for key := range members {
		if slices.Contains(known, key) {
			delete(members, key)
		}
	}

	if len(members) == 0 {
		return nil, nil
	}
	return members, nil
}

// mergeExtra adds extra members to the encoded object in data. Modeled fields
// win over an extra member with the same key.
func mergeExtra(data []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	for key, value := range extra {
		if _, ok := members[key]; !ok {
			members[key] = value
		}
	}

	return json.Marshal(members)
}

func withoutKeys(extra map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	for key, value := range extra {
		if slices.Contains(keys, key) {
			continue
		}
		if out == nil {
			out = make(map[string]json.RawMessage, len(extra))
		}
		out[key] = value
	}
	return out
}
