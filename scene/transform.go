package scene

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// localTransform computes the node's local affine matrix [a, b, c, d, tx, ty]
// from its translation and uniform scale.
func localTransform(n *Node) [6]float64 {
	return [6]float64{n.Scale, 0, 0, n.Scale, n.X, n.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's world matrix. parentRecomputed
// indicates whether the parent was recomputed this frame, which forces
// recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parent [6]float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.world = multiplyAffine(parent, localTransform(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.world, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's uniform scale and marks it dirty.
func (n *Node) SetScale(s float64) {
	n.Scale = s
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation on the
// next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldScale returns the accumulated uniform scale of the node's world
// transform, valid after the last Update.
func (n *Node) WorldScale() float64 {
	return n.world[0]
}

// WorldToLocal converts a world-space point to this node's local coordinate
// space. Valid after the last Update.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.world)
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
// Valid after the last Update.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.world, lx, ly)
}
