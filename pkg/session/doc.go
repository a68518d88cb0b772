/*
Package session models the cycle session: the span between the first traversal step and
the modifier release that ends it.

A State is Idle until Begin is called and Active until Finish. While Active it remembers
the anchor (the item the last step selected), its rank in history and the direction of
the last step, so that repeated switch commands continue one traversal instead of
restarting from the top of history each time.
*/
package session
