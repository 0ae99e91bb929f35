/*
Package swapchain provides the shared kernel for the swapchain ledger: the
interfaces that tie the store, transaction processing, and extension
modules together, along with the deterministic address scheme used to
locate on-chain entities.

Extensions live under x/ and are wired into an application through the
app package. The protocol core, the escrow-based swap order module, is
implemented in x/swap on top of the wallet primitives from x/cash.
*/
package swapchain
