package world

import "fmt"

// RoomType is the special purpose of a room. Only the type is recorded here;
// stocking a room is done elsewhere.
type RoomType int

const (
	OrdinaryRoom RoomType = iota
	ThemeRoom
	Court
	Swamp
	Vault
	Beehive
	Morgue
	Barracks
	Zoo
	Delphi
	Temple
	LeprechaunHall
	CockatriceNest
	Anthole
	ShopBase
	ArmorShop
	ScrollShop
	PotionShop
	WeaponShop
	FoodShop
	RingShop
	WandShop
	ToolShop
	BookShop
	FodderShop
	CandleShop
)

var roomTypeNames = map[RoomType]string{
	OrdinaryRoom:   "ordinary",
	ThemeRoom:      "themed",
	Court:          "throne",
	Swamp:          "swamp",
	Vault:          "vault",
	Beehive:        "beehive",
	Morgue:         "morgue",
	Barracks:       "barracks",
	Zoo:            "zoo",
	Delphi:         "delphi",
	Temple:         "temple",
	LeprechaunHall: "leprechaun hall",
	CockatriceNest: "cockatrice nest",
	Anthole:        "anthole",
	ShopBase:       "shop",
	ArmorShop:      "armor shop",
	ScrollShop:     "scroll shop",
	PotionShop:     "potion shop",
	WeaponShop:     "weapon shop",
	FoodShop:       "food shop",
	RingShop:       "ring shop",
	WandShop:       "wand shop",
	ToolShop:       "tool shop",
	BookShop:       "book shop",
	FodderShop:     "health food shop",
	CandleShop:     "candle shop",
}

func (t RoomType) String() string {
	if n, ok := roomTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("roomtype(%d)", int(t))
}

// IsShop is true for the general store and every specialised shop.
func (t RoomType) IsShop() bool { return t >= ShopBase }

// RoomTypeFromName parses a room type name as written in level scripts.
func RoomTypeFromName(s string) (RoomType, bool) {
	if s == "" {
		return OrdinaryRoom, true
	}
	for t, n := range roomTypeNames {
		if n == s {
			return t, true
		}
	}
	return OrdinaryRoom, false
}

// MaxRooms bounds the top-level room table; subroom numbers start after it.
const MaxRooms = 40

// MaxMapRegions bounds the rooms a joined cave map may register. Caves have no
// subrooms, so they may use the subroom half of the numbering too.
const MaxMapRegions = MaxRooms * 2

// Room is an entry in the room table. Bounds are the floor area, walls
// excluded.
type Room struct {
	LX, LY, HX, HY int

	Type RoomType
	Lit  bool

	// FirstDoor and DoorCount index the level's door table; a room's doors are
	// always contiguous there.
	FirstDoor int
	DoorCount int

	Irregular   bool
	NeedJoining bool
	NeedFill    bool

	Parent   *Room
	Subrooms []*Room

	// Index is the position in the room table, or in the subroom table when
	// Parent is set.
	Index int
}

// RoomNo returns the number this room writes into Cell.RoomNo.
func (r *Room) RoomNo() int {
	if r.Parent != nil {
		return r.Index + MaxRooms + 1 + RoomOffset
	}
	return r.Index + RoomOffset
}

// Inside reports whether (x,y) is in the room or on its walls.
func (r *Room) Inside(x, y int) bool {
	return x >= r.LX-1 && x <= r.HX+1 && y >= r.LY-1 && y <= r.HY+1
}

// Width returns the floor width.
func (r *Room) Width() int { return r.HX - r.LX + 1 }

// Height returns the floor height.
func (r *Room) Height() int { return r.HY - r.LY + 1 }

// Center returns the middle floor location.
func (r *Room) Center() Coord {
	return Coord{X: r.LX + (r.HX-r.LX)/2, Y: r.LY + (r.HY-r.LY)/2}
}
