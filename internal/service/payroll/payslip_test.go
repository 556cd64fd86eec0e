package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finalizedRunWithLine materializes and finalizes a one-employee payrun and
// returns the repos plus the line to snapshot.
func finalizedRunWithLine(t *testing.T) (*fakePayrunRepo, *fakeEmployeeRepo, payroll.PayrunLine) {
	t.Helper()

	p := period.OfMonth(2024, time.January)
	repo := newFakePayrunRepo()
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{testEmployee("e1", "co-1", 50000)}}
	attRepo := &fakeAttendanceRepo{rows: map[string][]attendance.Attendance{
		"e1": fullMonthPresence("e1", p),
	}}
	engine := newTestEngine(repo, empRepo, attRepo, &fakeAuditRepo{})

	run, err := engine.EnsurePayrun(context.Background(), "co-1", p)
	require.NoError(t, err)
	run, err = engine.MaterializeLines(context.Background(), run)
	require.NoError(t, err)
	_, err = engine.Finalize(context.Background(), run.ID, "co-1", "admin-1", "admin")
	require.NoError(t, err)

	lines, err := engine.ListLines(context.Background(), run.ID, "co-1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	return repo, empRepo, lines[0]
}

func TestGenerate_RequiresFinalizedRun(t *testing.T) {
	p := period.OfMonth(2024, time.January)
	repo := newFakePayrunRepo()
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{testEmployee("e1", "co-1", 50000)}}
	attRepo := &fakeAttendanceRepo{rows: map[string][]attendance.Attendance{
		"e1": fullMonthPresence("e1", p),
	}}
	engine := newTestEngine(repo, empRepo, attRepo, &fakeAuditRepo{})

	run, err := engine.EnsurePayrun(context.Background(), "co-1", p)
	require.NoError(t, err)
	_, err = engine.MaterializeLines(context.Background(), run)
	require.NoError(t, err)
	lines, err := engine.ListLines(context.Background(), run.ID, "co-1")
	require.NoError(t, err)

	gen := NewPayslipGenerator(repo, empRepo)
	_, err = gen.Generate(context.Background(), lines[0].ID, "co-1")
	assert.ErrorIs(t, err, payroll.ErrPayrunNotFinalized)
}

func TestGenerate_SnapshotsLineValues(t *testing.T) {
	repo, empRepo, line := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	slip, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)

	assert.Equal(t, line.ID, slip.PayrunLineID)
	assert.Equal(t, "Test e1", slip.EmployeeName)
	assert.Equal(t, "ACME-e1", slip.EmployeeCode)
	assert.True(t, slip.Gross.Equal(line.Gross))
	assert.True(t, slip.Net.Equal(line.Net))
	assert.False(t, slip.GeneratedAt.IsZero())
}

func TestGenerate_SecondCallReturnsStoredSnapshot(t *testing.T) {
	repo, empRepo, line := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	first, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestGenerate_LaterLineMutationDoesNotReachSlip(t *testing.T) {
	repo, empRepo, line := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	slip, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)
	originalNet := slip.Net

	// Mutate the stored line directly; the snapshot must not follow.
	repo.mu.Lock()
	mutated := repo.lines[line.ID]
	mutated.Net = decimal.NewFromInt(1)
	repo.lines[line.ID] = mutated
	repo.mu.Unlock()

	reread, err := gen.GetByID(context.Background(), slip.ID, "co-1")
	require.NoError(t, err)
	assert.True(t, reread.Net.Equal(originalNet), "payslip must keep the value captured at generation time")
}

func TestGenerate_UnknownLine(t *testing.T) {
	repo, empRepo, _ := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	_, err := gen.Generate(context.Background(), "nope", "co-1")
	assert.ErrorIs(t, err, payroll.ErrPayrunLineNotFound)
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	repo, empRepo, line := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	slip, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)

	out, err := gen.RenderPDF(context.Background(), slip.ID, "co-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
}

func TestRenderPDF_UnknownPayslip(t *testing.T) {
	repo, empRepo, _ := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	_, err := gen.RenderPDF(context.Background(), "nope", "co-1")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}

func TestPayslipLookup_ScopedToOwningCompany(t *testing.T) {
	repo, empRepo, line := finalizedRunWithLine(t)
	gen := NewPayslipGenerator(repo, empRepo)

	slip, err := gen.Generate(context.Background(), line.ID, "co-1")
	require.NoError(t, err)

	// Another tenant knowing the slip ID must not be able to read it.
	_, err = gen.GetByID(context.Background(), slip.ID, "co-2")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
	_, err = gen.RenderPDF(context.Background(), slip.ID, "co-2")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	got, err := gen.GetByID(context.Background(), slip.ID, "co-1")
	require.NoError(t, err)
	assert.Equal(t, slip.ID, got.ID)
}
