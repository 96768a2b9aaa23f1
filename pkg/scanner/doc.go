// Package scanner enumerates directory trees and compares two trees
// structurally.
//
// ScanTree lists a whole tree. ScanIntersection and ScanExclusive walk the
// base tree once and consult the partner directory level by level, so a
// branch that cannot match is never descended on the partner side and no
// full listing of both trees is needed before diffing.
//
// Names are compared byte for byte; no case folding or Unicode
// normalization is applied.
package scanner
