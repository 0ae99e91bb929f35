/*
Package swap implements escrow-based cross-chain swap orders.

A maker commits an asset into on-chain custody by creating an order. An
unrelated taker later completes the exchange by sending the
counter-asset in the same transaction that releases the custody. The
maker may cancel any time before a fill, reclaiming the funds.

Each order is a single bilateral, all-or-nothing commitment. There is no
matching, no partial fill, and no order book: an order binds exactly one
maker to whichever taker fills it first.

Orders trade between two tickers of the ledger: the native asset and a
wrapped representation of the counter-chain asset. The direction of an
order decides which side the maker deposits:

 1. Direction 0 — the maker deposits the wrapped asset into a dedicated
    escrow wallet and expects the native asset in return.
 2. Direction 1 — the maker deposits the native asset into the order's
    own wallet and expects the wrapped asset in return.

Order identity is fully deterministic: the order (and escrow) addresses
are derived from the (maker, amount) pair, so any party can locate an
order without an index service. The flip side is that a maker cannot
hold two open orders for the same amount at once.

Closed orders are deleted rather than marked: once filled or cancelled,
the record no longer exists and every later fill, cancel, or fetch fails
with a not-found error. Both custody wallets carry a small rent reserve
that is refunded to the maker by the destroying transition.
*/
package swap
