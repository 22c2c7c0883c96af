// Package builder defines shared constants used by problem constructors,
// ensuring consistent defaults and validation across all fixtures.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodLasso is the canonical name for the Lasso constructor.
	MethodLasso = "Lasso"
	// MethodGroupLasso is the canonical name for the GroupLasso constructor.
	MethodGroupLasso = "GroupLasso"
	// MethodChain is the canonical name for the Chain constructor.
	MethodChain = "Chain"
	// MethodConsensus is the canonical name for the Consensus constructor.
	MethodConsensus = "Consensus"
	// MethodBox is the canonical name for the Box constructor.
	MethodBox = "Box"
	// MethodAffineEquality is the canonical name for the AffineEquality constructor.
	MethodAffineEquality = "AffineEquality"
	// MethodBuildProblem is the canonical name for the orchestrator.
	MethodBuildProblem = "BuildProblem"
)

//-----------------------------------------------------------------------------
// Minimum sizes
//-----------------------------------------------------------------------------

// MinDim is the smallest row/column count of generated data.
const MinDim = 1

// MinChainLinks is the smallest chain: two terms sharing one variable.
const MinChainLinks = 2

// MinConsensusTerms is the smallest consensus problem.
const MinConsensusTerms = 1

// MinGroups is the smallest group count for GroupLasso.
const MinGroups = 1
