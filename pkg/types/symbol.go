package types

// SymbolFlags carries the declaration attributes the analyzer consumes
// read-only (visibility and initialization checks).
type SymbolFlags uint8

const (
	FlagPublic SymbolFlags = 1 << iota
	FlagNative
	FlagDeprecated
	FlagListener
)

// Symbol is the resolved declaration attached to identifier and declaration
// nodes by name resolution.
type Symbol struct {
	Name   string
	Module string
	Flags  SymbolFlags
	Type   Type
}

func (s *Symbol) IsPublic() bool     { return s != nil && s.Flags&FlagPublic != 0 }
func (s *Symbol) IsNative() bool     { return s != nil && s.Flags&FlagNative != 0 }
func (s *Symbol) IsDeprecated() bool { return s != nil && s.Flags&FlagDeprecated != 0 }
func (s *Symbol) IsListener() bool   { return s != nil && s.Flags&FlagListener != 0 }
