// Package uuid makes UUIDs bindable as gin URI and query parameters.
package uuid

import gid "github.com/google/uuid"

// UUID embeds google/uuid so that handlers can use its methods directly.
type UUID struct {
	gid.UUID
}

// Nil is the zero UUID, it binds from an absent parameter.
var Nil UUID

// UnmarshalParam implements gin's binding.BindUnmarshaler. An empty
// parameter binds to Nil so that optional query fields keep working.
func (u *UUID) UnmarshalParam(param string) error {
	if param == "" {
		*u = Nil
		return nil
	}

	id, err := gid.Parse(param)
	if err != nil {
		return err
	}

	*u = UUID{id}
	return nil
}
