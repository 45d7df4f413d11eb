package battle

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Participant is the per-entity metadata the feed attaches to a battle.
// Only the map keys matter for matching; the rest is carried for rendering.
type Participant struct {
	Name     string `json:"name"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	KillFame int64  `json:"killFame"`
}

// Battle is a single record from the upstream battles feed. IDs are assigned
// upstream, monotonically increasing, and double as the sync cursor.
type Battle struct {
	ID         int64                  `json:"id"`
	StartTime  time.Time              `json:"startTime"`
	EndTime    time.Time              `json:"endTime"`
	TotalFame  int64                  `json:"totalFame"`
	TotalKills int64                  `json:"totalKills"`
	Players    map[string]Participant `json:"players"`
	Guilds     map[string]Participant `json:"guilds"`
	Alliances  map[string]Participant `json:"alliances"`

	// Read is local state: set once a battle has been handed to matching.
	// Never reset once true.
	Read bool `json:"read"`
}

// Encode serializes a battle for storage.
func Encode(b Battle) ([]byte, error) {
	return json.Marshal(b)
}

// Decode deserializes a stored battle record.
func Decode(data []byte) (Battle, error) {
	var b Battle
	err := json.Unmarshal(data, &b)
	return b, err
}

// DecodeList deserializes a feed response page.
func DecodeList(data []byte) ([]Battle, error) {
	var bs []Battle
	err := json.Unmarshal(data, &bs)
	return bs, err
}
