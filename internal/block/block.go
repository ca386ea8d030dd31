// Package block implements the startup-initialized, immutable block
// registry: the closed mapping from BlockId to solidity, transparency,
// break time, per-face atlas texture indices, and a closed kind tag.
package block

// ID is an 8-bit block identifier; 0 is reserved for air.
type ID uint8

const Air ID = 0

// Face identifies one of the six cube face directions.
type Face int

const (
	FaceTop Face = iota
	FaceBottom
	FaceNorth
	FaceSouth
	FaceEast
	FaceWest
)

// Kind is the closed enum over block rendering/behavior shapes. Kept closed
// (rather than polymorphic per-block behavior) so the greedy mesher's hot
// loop stays branch-predictable, per the registry's design intent.
type Kind int

const (
	KindOpaqueCube Kind = iota
	KindTransparentCube
	KindCross
	KindInvisible
)

// Def is the immutable, per-id block definition.
type Def struct {
	ID            ID
	Name          string
	Solid         bool
	Transparent   bool
	BreakTime     float32 // seconds; negative means unbreakable
	Kind          Kind
	TexTop        uint16
	TexSide       uint16
	TexBottom     uint16
	TintFaces     map[Face]bool
	Tint          uint32 // 0xRRGGBB, 0 = no tint
}

// fallback is returned for unknown ids: safe-solid-opaque, unbreakable,
// matching §4.2's "unknown ids return a safe fallback" contract.
var fallback = &Def{
	ID:        Air,
	Name:      "unknown",
	Solid:     true,
	BreakTime: -1,
	Kind:      KindOpaqueCube,
}

var (
	byID        = make(map[ID]*Def)
	byName      = make(map[string]ID)
	textureIDs  = make(map[string]uint16)
	textureList []string
	initialized bool
)

func internTexture(name string) uint16 {
	if name == "" {
		return 0
	}
	if id, ok := textureIDs[name]; ok {
		return id
	}
	id := uint16(len(textureList))
	textureIDs[name] = id
	textureList = append(textureList, name)
	return id
}

func register(def Def) {
	d := def
	byID[d.ID] = &d
	byName[d.Name] = d.ID
}

// Init populates the registry. Idempotent; safe to call more than once
// (later calls are no-ops) so tests and the engine constructor can both
// call it without coordinating.
func Init() {
	if initialized {
		return
	}
	initialized = true

	register(Def{ID: Air, Name: "air", Solid: false, Transparent: true, Kind: KindInvisible})

	grassTop := internTexture("grass_top")
	grassSide := internTexture("grass_side")
	dirtTex := internTexture("dirt")
	stoneTex := internTexture("stone")
	bedrockTex := internTexture("bedrock")
	sandTex := internTexture("sand")
	sandstoneTex := internTexture("sandstone")
	coalOreTex := internTexture("coal_ore")
	ironOreTex := internTexture("iron_ore")
	goldOreTex := internTexture("gold_ore")
	diamondOreTex := internTexture("diamond_ore")
	waterTex := internTexture("water")
	tallGrassTex := internTexture("tallgrass")
	logTex := internTexture("log_oak")
	logTopTex := internTexture("log_oak_top")
	leavesTex := internTexture("leaves_oak")

	register(Def{
		ID: 1, Name: "grass", Solid: true, Kind: KindOpaqueCube, BreakTime: 0.6,
		TexTop: grassTop, TexSide: grassSide, TexBottom: dirtTex,
		TintFaces: map[Face]bool{FaceTop: true}, Tint: 0x7DFF5C,
	})
	register(Def{
		ID: 2, Name: "dirt", Solid: true, Kind: KindOpaqueCube, BreakTime: 0.5,
		TexTop: dirtTex, TexSide: dirtTex, TexBottom: dirtTex,
	})
	register(Def{
		ID: 3, Name: "stone", Solid: true, Kind: KindOpaqueCube, BreakTime: 1.5,
		TexTop: stoneTex, TexSide: stoneTex, TexBottom: stoneTex,
	})
	register(Def{
		ID: 4, Name: "bedrock", Solid: true, Kind: KindOpaqueCube, BreakTime: -1,
		TexTop: bedrockTex, TexSide: bedrockTex, TexBottom: bedrockTex,
	})
	register(Def{
		ID: 5, Name: "sand", Solid: true, Kind: KindOpaqueCube, BreakTime: 0.5,
		TexTop: sandTex, TexSide: sandTex, TexBottom: sandTex,
	})
	register(Def{
		ID: 6, Name: "sandstone", Solid: true, Kind: KindOpaqueCube, BreakTime: 0.8,
		TexTop: sandstoneTex, TexSide: sandstoneTex, TexBottom: sandstoneTex,
	})
	register(Def{
		ID: 7, Name: "coal_ore", Solid: true, Kind: KindOpaqueCube, BreakTime: 3.0,
		TexTop: coalOreTex, TexSide: coalOreTex, TexBottom: coalOreTex,
	})
	register(Def{
		ID: 8, Name: "iron_ore", Solid: true, Kind: KindOpaqueCube, BreakTime: 3.0,
		TexTop: ironOreTex, TexSide: ironOreTex, TexBottom: ironOreTex,
	})
	register(Def{
		ID: 9, Name: "gold_ore", Solid: true, Kind: KindOpaqueCube, BreakTime: 3.0,
		TexTop: goldOreTex, TexSide: goldOreTex, TexBottom: goldOreTex,
	})
	register(Def{
		ID: 10, Name: "diamond_ore", Solid: true, Kind: KindOpaqueCube, BreakTime: 3.0,
		TexTop: diamondOreTex, TexSide: diamondOreTex, TexBottom: diamondOreTex,
	})
	register(Def{
		ID: 11, Name: "water", Solid: false, Transparent: true, Kind: KindTransparentCube,
		BreakTime: -1, TexTop: waterTex, TexSide: waterTex, TexBottom: waterTex,
	})
	register(Def{
		ID: 12, Name: "tallgrass", Solid: false, Transparent: true, Kind: KindCross,
		BreakTime: 0.0, TexTop: tallGrassTex, TexSide: tallGrassTex, TexBottom: tallGrassTex,
		TintFaces: map[Face]bool{FaceTop: true, FaceBottom: true, FaceNorth: true, FaceSouth: true, FaceEast: true, FaceWest: true},
		Tint:      0x7DFF5C,
	})
	register(Def{
		ID: 13, Name: "log_oak", Solid: true, Kind: KindOpaqueCube, BreakTime: 2.0,
		TexTop: logTopTex, TexSide: logTex, TexBottom: logTopTex,
	})
	register(Def{
		ID: 14, Name: "leaves_oak", Solid: true, Transparent: true, Kind: KindTransparentCube, BreakTime: 0.2,
		TexTop: leavesTex, TexSide: leavesTex, TexBottom: leavesTex,
	})
}

func get(id ID) *Def {
	if d, ok := byID[id]; ok {
		return d
	}
	return fallback
}

// ByName resolves a registered block id by its name; ok is false if absent.
func ByName(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

func IsAir(id ID) bool { return id == Air }

func IsSolid(id ID) bool { return get(id).Solid }

func IsTransparent(id ID) bool { return get(id).Transparent }

func BreakTime(id ID) float32 { return get(id).BreakTime }

func KindOf(id ID) Kind { return get(id).Kind }

// FaceTexture returns the atlas tile index for the given block+face.
func FaceTexture(id ID, f Face) uint16 {
	d := get(id)
	switch f {
	case FaceTop:
		return d.TexTop
	case FaceBottom:
		return d.TexBottom
	default:
		return d.TexSide
	}
}

// Tint returns the RGB565-packable tint color for the face, or 0xFFFF
// (white, i.e. no visual tint) if the face is not tinted.
func Tint(id ID, f Face) uint16 {
	d := get(id)
	if d.Tint == 0 || d.TintFaces == nil || !d.TintFaces[f] {
		return 0xFFFF
	}
	r := (d.Tint >> 16) & 0xFF
	g := (d.Tint >> 8) & 0xFF
	b := d.Tint & 0xFF
	r5 := (r >> 3) & 0x1F
	g6 := (g >> 2) & 0x3F
	b5 := (b >> 3) & 0x1F
	return uint16((r5 << 11) | (g6 << 5) | b5)
}

// TextureCount returns the number of distinct atlas tiles registered.
func TextureCount() int { return len(textureList) }

// TextureName returns the name registered for a given tile index.
func TextureName(idx uint16) string {
	if int(idx) >= len(textureList) {
		return ""
	}
	return textureList[idx]
}
