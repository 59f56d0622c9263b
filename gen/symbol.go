package gen

import (
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/bridge/ir"
)

type SymbolInfo struct {
	LinkName string
	Ident    string
	Owner    string
	Host     ir.HostLang

	// Exported is set when the transfer function is defined by the generated
	// code rather than imported from the other side.
	Exported bool
}

type SymbolInfoStore struct {
	info   map[string]*SymbolInfo
	idents map[string]string
	mu     sync.Mutex
}

func NewSymbolInfoStore() *SymbolInfoStore {
	return &SymbolInfoStore{
		info:   map[string]*SymbolInfo{},
		idents: map[string]string{},
	}
}

// Register records the names of one bridged function. Both the link symbol
// and the transfer function identifier must be unique.
func (s *SymbolInfoStore) Register(info SymbolInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.info[info.LinkName]; ok {
		return fmt.Errorf("%w: %s", ErrLinknameAlreadyUsed, info.LinkName)
	}
	if other, ok := s.idents[info.Ident]; ok {
		return fmt.Errorf("%w: %s (used by %s and %s)", ErrIdentAlreadyUsed, info.Ident, other, info.LinkName)
	}

	s.info[info.LinkName] = &info
	s.idents[info.Ident] = info.LinkName
	return nil
}

func (s *SymbolInfoStore) GetSymbolInfo(linkName string) (*SymbolInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.info[linkName]
	return info, ok
}

// LinkNames returns every registered link symbol in sorted order.
func (s *SymbolInfoStore) LinkNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := maps.Keys(s.info)
	slices.Sort(names)
	return names
}
