// Package csg defines the constructive solid geometry tree used to describe
// laser-cut parts. A tree is an immutable value: every constructor wraps its
// inputs in a new node and never modifies them, so subtrees can be shared
// freely between parts and documents.
package csg
