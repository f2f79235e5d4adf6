package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Statute identifies a piece of legislation in the closed allow-list.
type Statute struct {
	// Key is the lowercase substring matched against document filenames.
	Key string

	// LawName is the canonical display name.
	LawName string

	// Domain is the legal domain the statute belongs to.
	Domain string
}

// Jurisdiction covered by the allow-list.
const Jurisdiction = "Pakistan"

// SourceType tags every record produced from the allow-list.
const SourceType = "Statute"

// allowedStatutes is the closed set of ingestable statutes.
// Documents whose filenames match none of these abort the build.
var allowedStatutes = []Statute{
	{Key: "contract act, 1872", LawName: "Contract Act, 1872", Domain: "Contract Law"},
	{Key: "companies act, 2017", LawName: "Companies Act, 2017", Domain: "Business / Corporate Law"},
	{Key: "income tax ordinance, 2001", LawName: "Income Tax Ordinance, 2001", Domain: "Tax Law"},
	{Key: "industrial relations act, 2012", LawName: "Industrial Relations Act, 2012", Domain: "Employment / Labour Law"},
}

// AllowedStatutes returns a copy of the statute allow-list.
func AllowedStatutes() []Statute {
	out := make([]Statute, len(allowedStatutes))
	copy(out, allowedStatutes)
	return out
}

// ResolveStatute maps a document file path to its statute metadata by
// case-insensitive substring match on the filename stem.
func ResolveStatute(path string) (Statute, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	lowered := strings.ToLower(stem)

	for _, st := range allowedStatutes {
		if strings.Contains(lowered, st.Key) {
			return st, nil
		}
	}

	keys := make([]string, len(allowedStatutes))
	for i, st := range allowedStatutes {
		keys[i] = st.Key
	}
	return Statute{}, fmt.Errorf("%w: file %q matches no allowed statute (allowed: %s)",
		ErrUnknownStatute, base, strings.Join(keys, ", "))
}
