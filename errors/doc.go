/*
Package errors implements custom error interfaces for swapchain.

The idea is to reuse a small set of root errors, categorized by a unique
ABCI code, and wrap them with additional context at every layer. Error
tests are done against the root error (kind), never against the
description, so wrapping is always safe.

Extensions may register their own root errors with custom codes. Codes
below 1000 are reserved for this package.
*/
package errors
