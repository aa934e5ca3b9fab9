package diag

// Error code constants, organized by the phase taxonomy fixed in §7.
// Each constant is the stable code carried on every Diagnostic of that
// kind; codes are never renumbered once shipped, matching the teacher's
// own E-xxx-nnnn-shaped const block discipline.
const (
	// Source-level errors (decode, BOM, prohibited character).
	ESrcBOMEmbedded     = "E-SRC-0101"
	ESrcInvalidUTF8     = "E-SRC-0102"
	ESrcProhibitedChar  = "E-SRC-0103"
	WSrcLeadingBOM       = "W-SRC-0104"

	// Project/manifest errors.
	EPrjUnknownKey   = "E-PRJ-0104"
	EPrjDuplicateKey = "E-PRJ-0202"
	EPrjMissingField = "E-PRJ-0103"
	EPrjBadName      = "E-PRJ-0105"
	EPrjBadPath      = "E-PRJ-0106"
	EPrjBadKind      = "E-PRJ-0107"

	// Module discovery errors.
	EModBadComponent = "E-MOD-0201"
	EModCaseCollide  = "E-MOD-0202"
	EModDuplicate    = "E-MOD-0203"

	// Unsupported constructs.
	EUnsReservedConstruct = "E-UNS-0101"

	// Resolution errors.
	EResUnknownName      = "E-RES-0101"
	EResWrongKind        = "E-RES-0102"
	EResAmbiguousImport  = "E-RES-0103"
	EResVisibility       = "E-RES-0104"
	EResUnknownModule    = "E-RES-0105"
	EResReservedIdent    = "E-RES-0106"

	// Semantic checks.
	ESemTypeMismatch        = "E-SEM-0201"
	ESemCallArgCount        = "E-SEM-0202"
	ESemCallArgType         = "E-SEM-0203"
	ESemCallMoveMissing     = "E-SEM-0204"
	ESemCallMoveUnexpected  = "E-SEM-0205"
	ESemCallArgNotPlace     = "E-SEM-0206"
	ESemNotAPlace           = "E-SEM-0207"
	ESemNotIndexable        = "E-SEM-0208"
	ESemMethodNotFound      = "E-SEM-0209"
	ESemMethodAmbiguous     = "E-SEM-0210"
	ESemReceiverPermission  = "E-SEM-0211"
	ESemExhaustiveness      = "E-SEM-0212"
	ESemGuardNotBool        = "E-SEM-0213"
	ESemDefaultConstruct    = "E-SEM-0214"
	ESemConstLen            = "E-SEM-0215"
	ESemNicheWiden          = "E-SEM-0216"
	ESemTransmuteSize       = "E-SEM-0217"
	ESemRangePatternType    = "E-SEM-0218"

	// Provenance / region errors.
	ProvEscapeErr       = "Prov-0301"
	ProvAsyncEscapeErr  = "Prov-0302"

	// Concurrency/async errors.
	AsyncCaptureErr = "Async-0401"

	// Output pipeline errors.
	EOutWrite = "E-OUT-0501"
)
