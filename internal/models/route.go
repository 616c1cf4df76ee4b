package models

// RouteStep is one ordered element of a route. Instruction may be empty;
// such steps are hidden from the displayed list but still occupy an index
// slot in the tracking sequence.
type RouteStep struct {
	Instruction string  // Instruction is the maneuver text shown to the user.
	Distance    float64 // Distance covered by the step, meters.
	Extent      Rect    // Extent is the step geometry envelope in the route plane.
}

// Route is an ordered sequence of steps with the overall geometry the
// viewport is derived from.
type Route struct {
	Steps    []RouteStep  // Steps in travel order.
	Distance float64      // Distance of the whole route, meters.
	Geometry []Coordinate // Geometry is the route polyline.
}
