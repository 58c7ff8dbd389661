package dashboard

import (
	"encoding/json"
	"strconv"
)

// Stats is the dashboard summary served by the backend. Counters arrive
// as numbers or quoted numbers depending on the backend version, so they
// decode through Count.
type Stats struct {
	NotesAccessed        Count    `json:"notesAccessed"`
	EventsTracked        Count    `json:"eventsTracked"`
	InternshipsAvailable Count    `json:"internshipsAvailable"`
	RecentEvents         []Recent `json:"recentEvents"`
}

// Recent is a trimmed event entry on the dashboard.
type Recent struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Count is a lenient counter. Missing, null or malformed values decode
// to zero rather than failing the whole stats payload.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = 0
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			*c = Count(n)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*c = Count(f)
	}
	return nil
}
