/*
Package htlc implements hash time locked escrows.

Every asset has one vault, a keyless account that custodies the escrowed
funds of all swaps in that asset. A seller deposits an amount into the
vault together with the sha256 commitment of a secret and a lock time.

Until the lock time (inclusive) the buyer can redeem the funds by revealing
the secret. The secret stays in the swap record, so it can be used to
unlock the matching commitment on a counterpart chain. After the lock time
only the seller can take the funds back with a refund.

	Active -> Redeemed
	Active -> Refunded

Both final states are sticky.
*/
package htlc
