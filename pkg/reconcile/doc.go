// Package reconcile applies a path selection to directory trees.
//
// Each call goes through four phases:
//
//   - Plan: resolve the selection against the root. Files bring their
//     ancestor directories; selected directories bring everything below
//     them. Touch plans the paths that do not exist yet instead.
//   - Scaffold (copy, move, touch): create the planned directories at the
//     destination, shallowest first, replacing anything in the way.
//   - Apply: copy, rename, delete or create the planned files.
//   - Prune (move, remove): delete planned directories left empty, deepest
//     first.
//
// A selected path the plan cannot use is skipped under the Lenient policy
// and fails the call under Strict. Missing paths, paths outside the root
// and paths through a symbolic link all count.
// Links are never followed. A failure during Scaffold, Apply or Prune
// aborts the call and leaves completed steps in place.
package reconcile
