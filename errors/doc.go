/*
Package errors implements the error registry used by escrowd.

Every error returned to a client should wrap one of the root errors declared
with Register. A root error carries an ABCI code, so clients can tell error
kinds apart without parsing messages. Extensions declare their own root
errors (see x/htlc) using codes that are not used by this package.

Create runtime errors with ErrXyz.New / ErrXyz.Newf or Wrap / Wrapf at the
point of failure. The innermost wrap records a stack trace, which is printed
with the %+v verb.

Test for an error kind with the Is method:

	if htlc.ErrCanNotRedeem.Is(err) {
		...
	}
*/
package errors
