package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLI_ConvertFileToFile tests convert with file input and output
func TestCLI_ConvertFileToFile(t *testing.T) {
	// Create a temporary directory for test files
	tempDir, err := os.MkdirTemp("", "tablify-test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	// Create a test JSON file
	jsonContent := `[
		{"id": 1, "name": "Item 1"},
		{"id": 2, "name": "Item 2"},
		{"id": 3, "name": "Item 3"}
	]`
	jsonFile := filepath.Join(tempDir, "items.json")
	err = os.WriteFile(jsonFile, []byte(jsonContent), 0644)
	require.NoError(t, err)

	// Define output file path
	outputFile := filepath.Join(tempDir, "items.csv")

	// Run the CLI command
	cmd := exec.Command("go", "run", "../../main.go", "convert", jsonFile, "-o", outputFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))
	assert.Contains(t, string(output), "Successfully exported")

	// Read the exported file
	exported, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Item 1\n2,Item 2\n3,Item 3\n", string(exported))
}

// TestCLI_ConvertStdinStdout tests convert with stdin input and stdout output
func TestCLI_ConvertStdinStdout(t *testing.T) {
	jsonContent := `{"a": {"b": 1}, "c": true}`

	cmd := exec.Command("go", "run", "../../main.go", "convert", "--from", "json")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	assert.Equal(t, "a.b,c\n1,true\n", stdout.String())
}

// TestCLI_ConvertCSVToJSONL tests converting between the text formats
func TestCLI_ConvertCSVToJSONL(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "convert", "../../testdata/cities.csv", "--to", "jsonl")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "CLI command failed: %s", stderr.String())

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"city":"Lisbon","country":"Portugal","population":"545923"}`, lines[0])
	assert.Equal(t, `{"city":"Osaka","country":"Japan","population":"2691000"}`, lines[1])
}

// TestCLI_ConvertHeaderStyle tests header restyling from the command line
func TestCLI_ConvertHeaderStyle(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "convert", "--from", "json", "--header-style", "screaming")
	cmd.Stdin = strings.NewReader(`{"user": {"name": "Ada"}}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	require.NoError(t, err)

	assert.Equal(t, "USER_NAME\nAda\n", stdout.String())
}

// TestCLI_View tests the terminal table rendering
func TestCLI_View(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "view", "../../testdata/users.json")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	rendered := string(output)
	assert.Contains(t, rendered, "Name")
	assert.Contains(t, rendered, "alpha")
	assert.Contains(t, rendered, "beta")
	assert.Contains(t, rendered, "users.json (JSON, 2 rows)")
}

// TestCLI_Info tests the table summary output
func TestCLI_Info(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "info", "../../testdata/orders.jsonl")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	summary := string(output)
	assert.Contains(t, summary, "File:    orders.jsonl")
	assert.Contains(t, summary, "Type:    JSONL")
	assert.Contains(t, summary, "Rows:    3")
	assert.Contains(t, summary, "Columns: 3")
	assert.Contains(t, summary, "order_id")
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	jsonContent := `{"name": "Invalid JSON, "age": 30}`

	cmd := exec.Command("go", "run", "../../main.go", "convert", "--from", "json")
	cmd.Stdin = strings.NewReader(jsonContent)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr.String(), "Parse error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "convert", "--from", "json")
	cmd.Stdin = strings.NewReader("")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr.String(), "empty input")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "tablify version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "convert")
	assert.Contains(t, helpOutput, "view")
	assert.Contains(t, helpOutput, "info")
	assert.Contains(t, helpOutput, "-d, --debug")
}
