package sigs

import (
	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
)

// VerifyTxSignatures checks all the signatures on the tx.
//
// returns list of signer conditions in signature order (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(tx SignedTx, chainID string) ([]escrowd.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(bz, chainID)
	if err != nil {
		return nil, err
	}

	sigs := tx.GetSignatures()
	signers := make([]escrowd.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(sig, toSign)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against the bytes built by
// BuildSignBytes and returns the condition of the signer.
func VerifySignature(sig *StdSignature, toSign []byte) (escrowd.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	return sig.Pubkey.Condition(), nil
}

/*
BuildSignBytes binds the transaction body to a single chain:

chainID      | 0x00 | serialized transaction body
ascii string | byte |

Signatures from another chain can never verify here.
*/
func BuildSignBytes(signBytes []byte, chainID string) ([]byte, error) {
	if !escrowd.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	output := make([]byte, 0, len(chainID)+1+len(signBytes))
	output = append(output, chainID...)
	output = append(output, 0)
	return append(output, signBytes...), nil
}

// SignTx creates a signature for the given tx
func SignTx(signer crypto.Signer, tx SignedTx, chainID string) (*StdSignature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(bz, chainID)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
