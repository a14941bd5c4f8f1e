package component

// MeshKind selects the visual for an entity from the renderer's fixed lookup table
// Resolved once at registration; the renderer never inspects entity types at runtime
type MeshKind uint8

const (
	MeshNone MeshKind = iota
	MeshPlayer
	MeshObstacle
	MeshTrigger
	MeshWall
	MeshMarker

	// MeshCount sizes lookup tables, keep last
	MeshCount
)

// RenderableComponent associates an entity with renderer-owned visual resources
type RenderableComponent struct {
	Mesh MeshKind
}
