// Package params defines the values that flow between transformations: the
// ordered ParamVec and the labeled Jacobian it may carry.
//
// A ParamVec maps parameter names to values, preserving insertion order
// for display while keeping names as the addressable key. It optionally
// carries a Jacobian describing its sensitivity to some upstream reference
// parameterization; a nil Jacobian means no upstream sensitivity is known.
//
// A Jacobian is a dense matrix with named rows (the vector's parameters)
// and named columns (the upstream reference). Chain composes two Jacobians
// by the chain rule, restricting the upstream matrix to the local column
// labels; DropCols removes the columns of parameters fixed at a step.
//
// Both types are value-semantics friendly: operations return fresh
// objects and never mutate their inputs.
package params
