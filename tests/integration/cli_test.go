package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "ID_Card,First_Name,Last_Name,Email,Policy_Number,Company_Name,Interaction_Type,Description,Sales_Person,Date,Hour,Value,Status"

// TestMain builds the insurapro binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "insurapro-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	insuraproBin = filepath.Join(tmpDir, "insurapro")

	cmd := exec.Command("go", "build", "-o", insuraproBin, "./cmd/insurapro")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestInitWritesHeaderOnlyFile(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("init")
	assert.Contains(t, result.Stdout, "InsuraPro initialized")
	assert.Equal(t, []string{header}, env.DataLines())

	_, err := os.Stat(filepath.Join(env.Config, "config.yaml"))
	assert.NoError(t, err)
}

func TestClientLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	env.MustRun("client", "add", "--id", "C1", "--first", "Ann", "--last", "Lee",
		"--email", "a@x.com", "--policy", "100", "--company", "Acme")
	env.MustRun("interaction", "appointment", "1", "--description", "Checkup",
		"--sales", "Bob", "--date", "2024-01-01", "--hour", "10:00")
	env.MustRun("interaction", "contract", "1", "--description", "Home",
		"--value", "1200.5", "--status", "Signed")

	assert.Equal(t, []string{
		header,
		"C1,Ann,Lee,a@x.com,100,Acme,Appointment,Checkup,Bob,2024-01-01,10:00,,",
		"C1,Ann,Lee,a@x.com,100,Acme,Contract,Home,,,,1200.50,Signed",
	}, env.DataLines())

	list := env.MustRun("client", "list")
	assert.Contains(t, list.Stdout, "[1] ID: C1 | Name: Ann Lee | Email: a@x.com | Policy: 100 | Company: Acme")

	history := env.MustRun("interaction", "list", "1")
	assert.Contains(t, history.Stdout, "Appointment - Checkup (Sales: Bob, Date: 2024-01-01, Hour: 10:00)")
	assert.Contains(t, history.Stdout, "Contract - Home (Value: $1200.50, Status: Signed)")

	env.MustRun("client", "delete", "1")
	assert.Equal(t, []string{header}, env.DataLines())
}

func TestMalformedRowsAreWarnings(t *testing.T) {
	env := NewTestEnv(t)
	content := strings.Join([]string{
		header,
		"C1,Ann,Lee,a@x.com,100,Acme,Contract,Home,,,,abc,Signed",
		"C2,Bob,Ray,b@x.com,notanumber,,,,,,,,",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(env.DataFile, []byte(content), 0o644))

	result := env.MustRun("client", "list")
	assert.Contains(t, result.Stdout, "[1] ID: C1")
	assert.NotContains(t, result.Stdout, "C2")
	assert.Contains(t, result.Stderr, "WRN")

	history := env.MustRun("interaction", "list", "1")
	assert.Contains(t, history.Stdout, "Value: $0.00")
}

func TestMissingDataFileStartsEmpty(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("client", "list")
	assert.Contains(t, result.Stdout, "No clients found.")
	assert.Contains(t, result.Stderr, "could not open data file")
}

func TestUnreadableDataFileExitCode(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")
	env.MustRun("client", "add", "--id", "C1", "--first", "Ann", "--policy", "100")
	before := env.DataLines()

	t.Setenv("INSURAPRO_BACKEND", "sqlite")
	result := env.Run("", "client", "add", "--id", "C2", "--first", "Bo", "--policy", "7")
	assert.Equal(t, 2, result.ExitCode)
	assert.Contains(t, result.Stderr, "data file unreadable")
	assert.Equal(t, before, env.DataLines())
}

func TestUserErrorExitCode(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	result := env.Run("", "client", "delete", "1")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "out of range")
}

func TestMenuSession(t *testing.T) {
	env := NewTestEnv(t)
	input := strings.Join([]string{
		"1", "C1", "Ann", "Lee", "a@x.com", "100", "Acme",
		"6", "1", "2", "Home", "99.999", "Open",
		"9",
	}, "\n") + "\n"

	result := env.Run(input, "menu")
	require.Equal(t, 0, result.ExitCode, "stderr: %s", result.Stderr)
	assert.Contains(t, result.Stdout, "Shutting down!")
	assert.Equal(t, []string{
		header,
		"C1,Ann,Lee,a@x.com,100,Acme,Contract,Home,,,,100.00,Open",
	}, env.DataLines())
}
