/*
Package escrowtest provides keys, authenticators and handler doubles for
testing extensions without running a full node.
*/
package escrowtest
