/*
Package history implements the recency-ordered focus history used by the cycle engine.

A Stack holds unique items with rank 0 being the most recently focused one. It is bounded:
pushing past capacity discards entries from the tail. Stack is not safe for concurrent use;
the cycle engine serializes access to it.
*/
package history
