// Package types defines the small set of types shared by the das packages:
// the FS interface every filesystem-touching component is written against
// and the Directory handle naming the base and partner trees.
package types
