// Package resolve talks to the video editor's scripting API through a Python
// bridge subprocess.
//
// Each call spawns the bridge, writes one JSON command to its stdin, and reads
// one JSON response from its stdout; stderr carries the bridge's own logging.
// The Timeline and Clip types adapt the bridge surface to the interfaces the
// beats pipeline consumes, so pipeline code never sees the wire format.
package resolve
