package layout

import (
	"strings"

	"github.com/dmitrijs2005/firemap/internal/client/models"
	"github.com/google/uuid"
)

const localPrefix = "local:"

// IconRef identifies a placed icon. It is either Local, for an icon created
// in this session and not yet known to the server, or Persisted, carrying the
// server's drag icon id. The zero value is not a valid reference.
type IconRef struct {
	local  string
	server models.ID
}

func Local(uid string) IconRef { return IconRef{local: uid} }

func Persisted(id models.ID) IconRef { return IconRef{server: id} }

// NewLocalRef returns a fresh Local reference backed by a time-ordered UUID.
func NewLocalRef() IconRef {
	id, err := uuid.NewV7()
	if err != nil {
		return Local(uuid.NewString())
	}
	return Local(id.String())
}

func (r IconRef) IsLocal() bool { return r.local != "" }

func (r IconRef) IsZero() bool { return r.local == "" && r.server == "" }

// ServerID returns the drag icon id of a persisted reference.
func (r IconRef) ServerID() (models.ID, bool) {
	if r.IsLocal() || r.server == "" {
		return "", false
	}
	return r.server, true
}

func (r IconRef) String() string {
	if r.IsLocal() {
		return localPrefix + r.local
	}
	return r.server.String()
}

// ParseRef reverses String.
func ParseRef(s string) IconRef {
	s = strings.TrimSpace(s)
	if uid, ok := strings.CutPrefix(s, localPrefix); ok {
		return Local(uid)
	}
	return Persisted(models.ID(s))
}
