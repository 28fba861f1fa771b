/*
Package token keeps fungible balances per (asset, owner).

There is no logic in the assets, except that a balance may never go
below zero or overflow. Balances are created from genesis and moved by
other extensions, which must present an authenticator proving they
control the source address.
*/
package token
