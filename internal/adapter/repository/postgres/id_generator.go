package postgres

import (
	"github.com/oklog/ulid/v2"

	"github.com/obi/gowallet/internal/domain"
)

// ULIDGenerator generates ULID-based row IDs and transaction references.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

var referencePrefixes = map[domain.TransactionCategory]string{
	domain.CategoryFunding:    "FUND",
	domain.CategoryTransfer:   "TXF",
	domain.CategoryWithdrawal: "WTH",
}

// Reference generates a category-prefixed reference. The ULID tail embeds
// a millisecond timestamp plus 80 random bits, so references stay unique
// even for calls landing on the same instant.
func (g *ULIDGenerator) Reference(category domain.TransactionCategory) string {
	prefix, ok := referencePrefixes[category]
	if !ok {
		prefix = "TXN"
	}

	return prefix + "_" + ulid.Make().String()
}
