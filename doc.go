/*
Package escrowd defines the common interfaces tying together the escrow
node: storage, transactions, handlers and the values carried through the
context.

Values are passed between the app, decorators and handlers using
context.Context. For every value XYZ of type T there are two functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level code
cannot overwrite what the app decided for the block (eg. height, time).
*/
package escrowd
