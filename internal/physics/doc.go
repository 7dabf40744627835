// Package physics simulates letters as independent rigid bodies.
//
// An [Engine] integrates gravity, friction and bounces against the ground,
// walls and ceiling, resolves letter-letter collisions as overlapping
// circles, and runs the restlessness state machine that eventually pulls a
// disturbed letter back home:
//
//   - [StateDormant]: at home, not integrated
//   - [StateActive]: disturbed and falling, bouncing or flying
//   - [StateSettling]: active and nearly still, restlessness rising
//   - [StateGrabbed]: under direct pointer control
//
// A settling letter snaps home once it is close, tired and upright.
//
// # Ordering
//
// Within a tick, pairwise collisions ([Engine.FindCollisions]) run before
// per-letter integration ([Engine.UpdateAll]), so collision corrections are
// still clamped to the bounds the same tick. Pairs are resolved in index
// order.
//
// Engine instances are NOT thread-safe.
package physics
