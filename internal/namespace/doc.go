// Package namespace models the Linux namespaces a container runs in.
//
// A [Namespace] pairs a [Type] with an optional path. An empty path asks for
// a fresh namespace of that type; a non-empty path names an existing one
// (usually /proc/<pid>/ns/<type>) that the container joins instead. A [Set]
// holds at most one namespace per type, keeps declaration order, and splits
// into the namespaces to create and the namespaces to join.
//
// Example usage:
//
//	var set namespace.Set
//	if err := set.Insert(namespace.New(namespace.PID, "")); err != nil {
//	    return err
//	}
//	if err := set.Insert(namespace.New(namespace.Network, "/proc/42/ns/net")); err != nil {
//	    return err
//	}
//
//	flags := set.CloneFlags() // CLONE_NEWPID
//	for _, ns := range set.ToJoin() {
//	    if err := namespace.Join(ns); err != nil {
//	        return err
//	    }
//	}
package namespace
