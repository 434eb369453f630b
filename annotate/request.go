package annotate

// Category names one kind of annotation request.
type Category string

// Annotation categories.
const (
	CategoryDatum     Category = "datum"
	CategoryTolerance Category = "geometric_tolerance"
	CategoryFinish    Category = "surface_finish"
	CategoryBalloon   Category = "balloon"
)

// Request is one annotation to lay out. Its Selector names a feature of the
// shape; the shape kind's selector table resolves it to concrete points.
type Request interface {
	Category() Category
	Selector() string
}

// Datum is a datum feature symbol, e.g. label "A" on the bottom face.
type Datum struct {
	Label    string
	AttachTo string
}

func (Datum) Category() Category { return CategoryDatum }
func (d Datum) Selector() string { return d.AttachTo }

// GeometricTolerance is a feature control frame.
type GeometricTolerance struct {
	Type      string // e.g. "perpendicularity"
	Tolerance string
	Datums    []string
	AttachTo  string
}

func (GeometricTolerance) Category() Category { return CategoryTolerance }
func (g GeometricTolerance) Selector() string { return g.AttachTo }

// SurfaceFinish is a roughness symbol. Rotation is in degrees, counter
// clockwise; a zero Size takes DefaultFinishSize.
type SurfaceFinish struct {
	Location string
	Symbol   string
	Rotation float64
	Size     float64
}

func (SurfaceFinish) Category() Category { return CategoryFinish }
func (s SurfaceFinish) Selector() string { return s.Location }

// Balloon is a circled item number pointing at a component.
type Balloon struct {
	Number   string
	AttachTo string
}

func (Balloon) Category() Category { return CategoryBalloon }
func (b Balloon) Selector() string { return b.AttachTo }
