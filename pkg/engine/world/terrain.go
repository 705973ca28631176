package world

import "fmt"

// Terrain is the type of a map location. The ordering matters: several
// predicates are range checks over it.
type Terrain int

const (
	Stone Terrain = iota
	VWall
	HWall
	TLCorner
	TRCorner
	BLCorner
	BRCorner
	CrossWall
	TUWall
	TDWall
	TLWall
	TRWall
	DBWall
	Tree
	SDoor
	SCorr
	Pool
	Moat
	Water
	DrawbridgeUp
	LavaPool
	LavaWall
	IronBars
	Doorway
	Corr
	Floor
	Stairs
	Ladder
	Fountain
	Throne
	Sink
	Grave
	Altar
	Ice
	DrawbridgeDown
	Air
	Cloud
	MaxTerrain
)

var terrainNames = [...]string{
	"stone", "vwall", "hwall", "tlcorner", "trcorner", "blcorner", "brcorner",
	"crosswall", "tuwall", "tdwall", "tlwall", "trwall", "dbwall", "tree",
	"sdoor", "scorr", "pool", "moat", "water", "drawbridge_up", "lava",
	"lavawall", "iron_bars", "door", "corr", "room", "stairs", "ladder",
	"fountain", "throne", "sink", "grave", "altar", "ice", "drawbridge_down",
	"air", "cloud",
}

// String returns the lower-case terrain name.
func (t Terrain) String() string {
	if t >= 0 && int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", int(t))
}

// Valid reports whether t names a real terrain type.
func (t Terrain) Valid() bool {
	return t >= Stone && t < MaxTerrain
}

// IsWall is true for every wall subtype, excluding stone.
func (t Terrain) IsWall() bool { return t != Stone && t <= DBWall }

// IsStWall is true for stone and walls.
func (t Terrain) IsStWall() bool { return t <= DBWall }

// IsRock is true for anything solid: stone, walls, trees, secret doors and corridors.
func (t Terrain) IsRock() bool { return t < Pool }

// IsObstructed is the same range as IsRock, named for placement checks.
func (t Terrain) IsObstructed() bool { return t < Pool }

func (t Terrain) IsDoor() bool { return t == Doorway }

func (t Terrain) IsTree() bool { return t == Tree }

// IsAccessible is true for doors and everything that can be walked on.
func (t Terrain) IsAccessible() bool { return t >= Doorway }

// IsRoom is true for floor and floor-like furniture.
func (t Terrain) IsRoom() bool { return t >= Floor }

// SpacePos is true where an object or monster may stand.
func (t Terrain) SpacePos() bool { return t > Doorway }

func (t Terrain) IsPool() bool { return t >= Pool && t <= DrawbridgeUp }

func (t Terrain) IsLava() bool { return t == LavaPool || t == LavaWall }

func (t Terrain) IsFurniture() bool { return t >= Stairs && t <= Altar }

func (t Terrain) IsAir() bool { return t == Air || t == Cloud }

// IsStairs is true for the two terrains the grid refuses to overwrite.
func (t Terrain) IsStairs() bool { return t == Stairs || t == Ladder }

// mapChars is the character set accepted in map fragments. '.' is floor,
// ' ' is stone and 'x' marks a transparent cell that keeps the underlying
// terrain.
var mapChars = map[rune]Terrain{
	' ':  Stone,
	'#':  Corr,
	'.':  Floor,
	'-':  HWall,
	'|':  VWall,
	'+':  Doorway,
	'A':  Air,
	'B':  CrossWall,
	'C':  Cloud,
	'S':  SDoor,
	'H':  SCorr,
	'{':  Fountain,
	'\\': Throne,
	'K':  Sink,
	'}':  Moat,
	'P':  Pool,
	'L':  LavaPool,
	'Z':  LavaWall,
	'I':  Ice,
	'W':  Water,
	'T':  Tree,
	'F':  IronBars,
	'x':  MaxTerrain,
}

// TerrainFromChar maps a map-fragment character to its terrain. MaxTerrain
// is returned for the transparent marker.
func TerrainFromChar(c rune) (Terrain, bool) {
	t, ok := mapChars[c]
	return t, ok
}

// TerrainFromName maps a terrain name or single map character to its terrain.
func TerrainFromName(s string) (Terrain, bool) {
	if r := []rune(s); len(r) == 1 {
		if t, ok := mapChars[r[0]]; ok && t != MaxTerrain {
			return t, true
		}
	}
	for i, n := range terrainNames {
		if n == s {
			return Terrain(i), true
		}
	}
	return Stone, false
}
