// Parses flags, configures logging and runs the cr7 commands.
//
// Global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Include source locations in log records.
//	-d, --debug     Enable debug output.
//	    --root      Directory holding container state.
//
// Commands:
//
//	create <id>           Create a container from a bundle and run it to completion.
//	run [<id>]            Like create, generating an id when none is given.
//	start <id>            Run a stopped container again.
//	state <id>            Print the state of a container as JSON.
//	list                  List containers.
//	kill <id> [signal]    Send a signal to a running container.
//	delete <id>           Remove a container's state.
//	version               Print version information.
//
// Flags override build-time defaults set via linker flags. After parsing, the
// global logger is rebuilt to reflect the final level and verbosity before the
// command runs. The hidden init command is the entry point of container
// processes and is never invoked by hand.
package cli
