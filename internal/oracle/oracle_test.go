package oracle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/specval/internal/catalogue"
	"github.com/GriffinCanCode/specval/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/specval/internal/logging"
	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/shared/utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	half   = "0.50000000000000000000000000000000000000000000000000"
	ln2    = "0.69314718055994530941723212145817656807550013436026"
	gamma5 = "24.000000000000000000000000000000000000000000000000"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFixture(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newTestOracle(opts Options) (*Oracle, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := &logging.Logger{Logger: zap.New(core)}
	return New(catalogue.New(), logger, monitoring.NewMetrics(), opts), logs
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	logistic := writeFixture(t, dir, "Logistic.csv",
		"arg0,expectedresult\r\n0,0.1\r\n1,NaN\r\n-Infinity,3\r\n2,Infinity\r\n")
	sumexp := writeFixture(t, dir, "LogSumExp.csv",
		"arg0,arg1,expectedresult\r\n0,0,0\r\n-Infinity,-Infinity,1\r\n")
	gamma := writeFixture(t, dir, "Gamma.csv",
		"arg0,expectedresult\r\n5,1\r\n0,1\r\n-2,-Infinity\r\n")

	betaContent := "arg0,arg1,arg2,expectedresult\r\n0.5,1,1,0.25\r\n"
	beta := writeFixture(t, dir, "BetaCdf.csv", betaContent)
	unknownContent := "arg0,expectedresult\r\n1,2\r\n"
	unknown := writeFixture(t, dir, "Mystery.csv", unknownContent)
	writeFixture(t, dir, "notes.txt", "not a fixture")

	o, logs := newTestOracle(Options{})
	report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	t.Run("closed forms are recomputed", func(t *testing.T) {
		assert.Equal(t,
			"arg0,expectedresult\r\n0,"+half+"\r\n1,NaN\r\n-Infinity,0.0\r\n2,Infinity\r\n",
			readFixture(t, logistic))
		assert.Equal(t,
			"arg0,arg1,expectedresult\r\n0,0,"+ln2+"\r\n-Infinity,-Infinity,-Infinity\r\n",
			readFixture(t, sumexp))
	})

	t.Run("domain errors become NaN", func(t *testing.T) {
		assert.Equal(t,
			"arg0,expectedresult\r\n5,"+gamma5+"\r\n0,NaN\r\n-2,-Infinity\r\n",
			readFixture(t, gamma))
	})

	t.Run("unsupported and unknown fixtures are untouched", func(t *testing.T) {
		assert.Equal(t, betaContent, readFixture(t, beta))
		assert.Equal(t, unknownContent, readFixture(t, unknown))
	})

	t.Run("report", func(t *testing.T) {
		assert.Equal(t, o.RunID().String(), report.RunID)
		require.Len(t, report.Files, 5)

		byName := make(map[string]FileReport)
		for _, fr := range report.Files {
			byName[fr.Name] = fr
		}
		assert.Equal(t, monitoring.FileSkipped, byName["BetaCdf.csv"].Status)
		assert.Equal(t, "unsupported", byName["BetaCdf.csv"].Reason)
		assert.Equal(t, "unknown", byName["Mystery.csv"].Reason)

		lg := byName["Logistic.csv"]
		assert.Equal(t, monitoring.FileProcessed, lg.Status)
		assert.Equal(t, 4, lg.Rows)
		assert.Equal(t, 2, lg.Computed)
		assert.Equal(t, 2, lg.Copied)

		gm := byName["Gamma.csv"]
		assert.Equal(t, 1, gm.Computed)
		assert.Equal(t, 1, gm.Failed)
		assert.Equal(t, 1, gm.Copied)

		assert.Equal(t, int64(3), report.Totals.Files[monitoring.FileProcessed])
		assert.Equal(t, int64(2), report.Totals.Files[monitoring.FileSkipped])
		assert.Equal(t, int64(1), report.Totals.Rows[monitoring.OutcomeFailed])
	})

	t.Run("logs", func(t *testing.T) {
		assert.Equal(t, 2, logs.FilterMessage("Don't know how to process, skipping").Len())
		nan := logs.FilterMessage("No real value, setting result to NaN").All()
		require.Len(t, nan, 1)
		assert.Equal(t, "Gamma.csv", nan[0].ContextMap()["fixture"])
		for _, entry := range logs.All() {
			assert.Equal(t, o.RunID().String(), entry.ContextMap()["run"])
		}
	})
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	content := "arg0,expectedresult\n0,0.1\n"
	path := writeFixture(t, dir, "Logistic.csv", content)

	o, _ := newTestOracle(Options{DryRun: true})
	report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, content, readFixture(t, path))
	require.Len(t, report.Files, 1)
	assert.Equal(t, 1, report.Files[0].Computed)
	assert.True(t, report.Files[0].Changed)
}

func TestRunWorkers(t *testing.T) {
	dir := t.TempDir()
	names := []string{"Erfc.csv", "ExpMinus1.csv", "Logistic.csv", "LogisticLn.csv", "NormalCdf.csv", "Trigamma.csv"}
	for _, name := range names {
		writeFixture(t, dir, name, "arg0,expectedresult\n1,0\n")
	}

	o, _ := newTestOracle(Options{Workers: 3})
	report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Files, len(names))
	for i, fr := range report.Files {
		assert.Equal(t, names[i], fr.Name, "report follows scan order")
		assert.Equal(t, monitoring.FileProcessed, fr.Status)
		assert.Equal(t, 1, fr.Computed)
	}
	assert.Equal(t, int64(len(names)), report.Totals.Files[monitoring.FileProcessed])

	serial, _ := newTestOracle(Options{Workers: 1})
	for _, name := range names {
		text, _, err := serial.Evaluate(name, []string{"1"})
		require.NoError(t, err)
		assert.Equal(t, "arg0,expectedresult\n1,"+text+"\n", readFixture(t, filepath.Join(dir, name)))
	}
}

func TestRunDigest(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "Logistic.csv", "arg0,expectedresult\n0,0\n")

	first, _ := newTestOracle(Options{})
	report, err := first.Run(context.Background(), dir)
	require.NoError(t, err)
	fr := report.Files[0]
	assert.True(t, fr.Changed)
	assert.Equal(t, utils.DefaultHasher().HashString(readFixture(t, path)), fr.Digest)

	stamp := time.Unix(1_000_000_000, 0)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	second, _ := newTestOracle(Options{Digest: utils.XXH64})
	report, err = second.Run(context.Background(), dir)
	require.NoError(t, err)
	fr = report.Files[0]
	assert.False(t, fr.Changed)
	assert.Equal(t, utils.NewHasher(utils.XXH64).HashString(readFixture(t, path)), fr.Digest)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp), "unchanged fixture is not rewritten")
}

func TestRunPreservesLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "ExpMinus1.csv", "arg0,expectedresult\n0,1\n")

	o, _ := newTestOracle(Options{})
	_, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "arg0,expectedresult\n0,0.0\n", readFixture(t, path))
}

func TestRunArityMismatch(t *testing.T) {
	dir := t.TempDir()
	content := "arg0,arg1,expectedresult\n0,1,2\n"
	path := writeFixture(t, dir, "Logistic.csv", content)

	o, logs := newTestOracle(Options{})
	report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, content, readFixture(t, path))
	assert.Equal(t, monitoring.FileSkipped, report.Files[0].Status)
	assert.Equal(t, 1, logs.FilterMessage("Argument count mismatch, skipping").Len())
}

func TestRunBadFixture(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Erfc.csv", "arg0,result\n0,1\n")
	good := writeFixture(t, dir, "Logistic.csv", "arg0,expectedresult\n0,0\n")

	o, _ := newTestOracle(Options{})
	report, err := o.Run(context.Background(), dir)
	require.Error(t, err)

	assert.Contains(t, readFixture(t, good), half, "later fixtures are still processed")
	require.Len(t, report.Files, 2)
	assert.Equal(t, monitoring.FileFailed, report.Files[0].Status)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Logistic.csv", "arg0,expectedresult\n0,0\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, _ := newTestOracle(Options{})
	_, err := o.Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunPattern(t *testing.T) {
	dir := t.TempDir()
	logistic := writeFixture(t, dir, "Logistic.csv", "arg0,expectedresult\n0,0\n")
	expm1 := writeFixture(t, dir, "ExpMinus1.csv", "arg0,expectedresult\n0,1\n")

	o, _ := newTestOracle(Options{Pattern: "Log*.csv"})
	_, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Contains(t, readFixture(t, logistic), half)
	assert.Equal(t, "arg0,expectedresult\n0,1\n", readFixture(t, expm1))
}

func TestEvaluate(t *testing.T) {
	o, _ := newTestOracle(Options{})

	t.Run("formatted value", func(t *testing.T) {
		text, res, err := o.Evaluate("LogSumExp.csv", []string{"0", "0"})
		require.NoError(t, err)
		assert.Equal(t, ln2, text)
		assert.Equal(t, common.KindFinite, res.Kind)
	})

	t.Run("shorter output", func(t *testing.T) {
		short, _ := newTestOracle(Options{OutputDigits: 5})
		text, _, err := short.Evaluate("LogSumExp.csv", []string{"0", "0"})
		require.NoError(t, err)
		assert.Equal(t, "0.69315", text)
	})

	t.Run("pole", func(t *testing.T) {
		text, res, err := o.Evaluate("Gamma.csv", []string{"-3"})
		require.NoError(t, err)
		assert.Equal(t, "NaN", text)
		assert.ErrorIs(t, res.Reason, common.ErrPole)
	})

	t.Run("errors", func(t *testing.T) {
		_, _, err := o.Evaluate("Mystery.csv", []string{"1"})
		assert.ErrorIs(t, err, ErrUnknownFixture)

		_, _, err = o.Evaluate("ulp.csv", []string{"1"})
		assert.Error(t, err)

		_, _, err = o.Evaluate("Gamma.csv", []string{"1", "2"})
		assert.ErrorIs(t, err, catalogue.ErrArity)
	})

	t.Run("bad argument", func(t *testing.T) {
		text, res, err := o.Evaluate("Gamma.csv", []string{"five"})
		require.NoError(t, err)
		assert.Equal(t, "NaN", text)
		assert.True(t, strings.Contains(res.Reason.Error(), "arg0"))
	})
}

func TestReportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "Logistic.csv", "arg0,expectedresult\n0,0\n")

	o, _ := newTestOracle(Options{})
	report, err := o.Run(context.Background(), dir)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteFile(path))

	loaded, err := ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.RunID, loaded.RunID)
	if diff := cmp.Diff(report.Files, loaded.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, report.Totals, loaded.Totals)
	t.Run("rejects a foreign run id", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"run_id":"job_1","files":[]}`), 0o644))
		_, err := ReadReport(bad)
		assert.Error(t, err)
	})
}
