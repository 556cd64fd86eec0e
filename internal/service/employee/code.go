package employee

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
)

// CodeGenerator issues human-readable employee codes of the form
// <COMPANY><F2><L2><YEAR><SERIAL>, e.g. ACMEJODO20240001.
//
// Serials come from an atomic counter keyed by (companyCode, year); the
// increment happens in the store, so two concurrent provisions can never
// observe the same serial even across processes.
type CodeGenerator struct {
	sequenceRepo employee.CodeSequenceRepository
}

func NewCodeGenerator(sequenceRepo employee.CodeSequenceRepository) *CodeGenerator {
	return &CodeGenerator{sequenceRepo: sequenceRepo}
}

// Generate issues the next code for the company and year.
func (g *CodeGenerator) Generate(ctx context.Context, firstName, lastName, companyCode string, year int) (string, error) {
	serial, err := g.sequenceRepo.NextSerial(ctx, companyCode, year)
	if err != nil {
		return "", fmt.Errorf("failed to issue employee code serial: %w", err)
	}
	return FormatCode(firstName, lastName, companyCode, year, serial), nil
}

// FormatCode builds the code from already-issued parts. Initials are the
// first two letters of each name, uppercased; names shorter than two letters
// are padded with X so the code keeps a fixed shape.
func FormatCode(firstName, lastName, companyCode string, year, serial int) string {
	return fmt.Sprintf("%s%s%s%d%04d",
		strings.ToUpper(companyCode),
		initials(firstName),
		initials(lastName),
		year,
		serial,
	)
}

func initials(name string) string {
	letters := make([]rune, 0, 2)
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		letters = append(letters, unicode.ToUpper(r))
		if len(letters) == 2 {
			break
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}
	return string(letters)
}
