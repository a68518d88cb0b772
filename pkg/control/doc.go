/*
Package control implements the local control channel of the alttab daemon.

Clients connect to a unix stream socket, write a single command token ("switch" or
"rev-switch") and disconnect. The server never replies: the effect of a command is
only observable as a focus change. Unknown payloads are ignored.

The Server owns its socket path for its whole lifetime. Listen takes an exclusive
lock on a sibling ".lock" file, removes a stale socket left by a previous run and
binds a fresh one; Close releases all three.
*/
package control
