// Package spiral routes a multi-layer squircle spiral coil.
//
// SquircleSpiral produces one arc: a polyline winding around a center from a
// start point to an end point with a fixed turning direction and enough whole
// turns to respect the minimum pitch. GenerateSpiralTrace stitches three arcs
// per layer through rings of vias so current circulates counter-clockwise on
// every layer and the moments of all layers add.
//
// Everything here is deterministic and synchronous: identical inputs give
// bit-identical geometry. Layers are routed strictly in order because each
// layer starts on the via where the previous one ended.
package spiral

import "errors"

// ErrInvalidParameter is wrapped by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")
