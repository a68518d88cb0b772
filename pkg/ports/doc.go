/*
Package ports defines the driven ports (interfaces) of the alttab daemon.

These interfaces decouple the cycle engine from the window manager and from the
control transport.

# Key Interfaces

  - Gateway: The window manager connection (focus events, modifier release, live items, focus command).
  - Dispatcher: Receives parsed control commands from the control server.
*/
package ports
