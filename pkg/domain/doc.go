/*
Package domain contains the core domain types shared by the alttab engine and its adapters.

It is kept free of I/O: the window manager, the control socket and the observability
backends all live behind the ports package and the adapters.

# Key Entities

  - LiveSet: The set of items that currently exist, as reported by the window manager.
  - Command: A control token received over the control socket ("switch", "rev-switch").
  - LifecycleHooks: Callbacks fired by the engine after each operation (focus, step, prune, commit).
*/
package domain
