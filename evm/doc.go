/*
Package evm implements a minimal Ethereum-style virtual machine.

The interpreter loops over a single account's byte code and executes it
according to the rules of the Ethereum yellow paper for the supported
subset of instructions: 256-bit word arithmetic, a growable linear memory
and the account's persistent storage. There is no gas accounting, no
message calls and no logging; a run ends with one of three outcomes
(stop, return or revert) or with a host-level error when the code itself
is malformed.
*/
package evm
