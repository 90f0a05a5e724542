// Package runtime manages the lifecycle of containers.
//
// A [Runtime] owns a state directory holding one JSON file per container.
// Each file records the container's id, status, bundle, init pid and the
// digest of the configuration it was created from, so separate invocations
// of the runtime observe the same container.
//
// A container moves through creating, created, running and stopped. Create
// takes a fresh container through the whole sequence: the bundle is loaded
// and its environment built before anything is written, the state file is
// then claimed exclusively, the process is spawned and the runtime waits
// for it to exit. A stopped container can be started again, which reloads
// its bundle and runs it once more.
//
// Example usage:
//
//	rt := runtime.New(paths.State(), process.NewSpawner())
//
//	ctr, err := rt.Create("web", "/var/lib/bundles/web")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ctr.Status(), ctr.ExitCode())
//
//	out, err := rt.State("web")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out)
package runtime
