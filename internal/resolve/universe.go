package resolve

// universeTypeNames and universeValueNames enumerate §4.4's built-in
// universe: primitive types; predicate classes; semantic/async carrier
// types; and the module alias "cursive".
var universeTypeNames = []string{
	"i8", "i16", "i32", "i64", "i128",
	"u8", "u16", "u32", "u64", "u128",
	"isize", "usize", "f16", "f32", "f64",
	"bool", "char", "string", "bytes", "Range",
	"Self", "Modal", "Region", "RegionOptions", "CancelToken", "Context",
	"System", "ExecutionDomain", "CpuSet", "Priority", "Reactor",
	"Async", "Future", "Sequence", "Stream", "Pipe", "Exchange", "Tracked",
}

var universeClassNames = []string{
	"Drop", "Bitcopy", "Clone", "Eq", "Hash", "Hasher", "Iterator", "Step", "FfiSafe",
}

var universeModuleAliases = []string{"cursive"}

// NewUniverse builds the fixed built-in scope described in §4.4.
func NewUniverse() *Scope {
	s := NewScope()
	for _, name := range universeTypeNames {
		k := NewIdKey(name)
		s.Bind(k, &Entity{Kind: KindType, Name: k, Source: SourceUniverse})
	}
	for _, name := range universeClassNames {
		k := NewIdKey(name)
		s.Bind(k, &Entity{Kind: KindClass, Name: k, Source: SourceUniverse})
	}
	for _, name := range universeModuleAliases {
		k := NewIdKey(name)
		s.Bind(k, &Entity{Kind: KindModuleAlias, Name: k, Source: SourceUniverse})
	}
	return s
}
