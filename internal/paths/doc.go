// Provides the on-disk locations used by the runtime.
//
// Container state lives in one JSON file per container under a state
// directory. When running as root the directory is /run/cr7, the location
// every invocation on the host agrees on. Unprivileged users get a private
// directory under their XDG runtime directory instead.
package paths
