package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"
)

// ErrSimulationFailed wraps a failure reported by the generated script: the
// external run raised, and the script printed the formatted trace in the
// error envelope instead of a result.
var ErrSimulationFailed = errors.New("simulation failed")

// scriptTemplate is the generated Python program executed by the bridge. It
// reconstructs the request from the embedded payload, hands it to the
// external toolkit, and prints the response envelope as its final line.
// Any failure is caught and re-emitted as an error envelope, so stdout is
// the sole result channel either way.
var scriptTemplate = template.Must(template.New("run").Parse(`import json
import sys
import traceback

sys.path.insert(0, {{.PackagesDir}})

PAYLOAD = {{.Payload}}


def main():
    from ladybugtools_toolkit.external_comfort.simulate import SimulationResult

    request = json.loads(PAYLOAD)
    result = SimulationResult.from_dict(request).run()
    print(json.dumps({"schema_version": {{.SchemaVersion}}, "result": result.to_dict()}))


if __name__ == "__main__":
    try:
        main()
    except Exception:
        print(json.dumps({"schema_version": {{.SchemaVersion}}, "error": traceback.format_exc()}))
`))

// Bridge runs simulation requests through the external interpreter.
//
// Each Run is a single synchronous attempt: serialize the request, write the
// generated script into the run's scratch directory, execute it, and decode
// the last non-empty stdout line as the response envelope. There is no
// retry; recovery is the caller invoking Run again.
type Bridge struct {
	env    *Environment
	logger *logrus.Logger
}

func NewBridge(env *Environment, logger *logrus.Logger) *Bridge {
	return &Bridge{env: env, logger: logger}
}

// Run executes the request and materializes the printed result.
func (b *Bridge) Run(ctx context.Context, req *Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	scratch, err := b.env.ScratchDir(req.SimulationID)
	if err != nil {
		return nil, err
	}

	scriptPath := filepath.Join(scratch, "run.py")
	script, err := renderScript(payload, b.env.PackagesDir)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(scriptPath, script, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write run script: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"simulation_id": req.SimulationID,
		"epw_file":      req.EPWFile,
	}).Info("Running external simulation")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.env.Interpreter, scriptPath)
	cmd.Dir = scratch
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("simulation process failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	// The external run may emit incidental output on earlier lines; only
	// the final non-empty line is the envelope.
	line := lastNonEmptyLine(stdout.String())
	if line == "" {
		return nil, fmt.Errorf("simulation process produced no output")
	}

	var envelope responseEnvelope
	if err := json.Unmarshal([]byte(line), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode simulation output: %w", err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrSimulationFailed, envelope.Error)
	}
	if envelope.Result == nil {
		return nil, fmt.Errorf("simulation output contained neither result nor error")
	}

	// Identity comes from the request, not from whatever the external run
	// echoed back.
	result := envelope.Result
	result.SchemaVersion = SchemaVersion
	result.SimulationID = req.SimulationID
	result.EPWFile = req.EPWFile
	result.GroundMaterial = req.GroundMaterial
	result.ShadeMaterial = req.ShadeMaterial

	return result, nil
}

// renderScript embeds the JSON payload into the script as a quoted string
// literal. Go's quoting rules for printable ASCII are a subset of Python's,
// so the literal parses identically on the other side.
func renderScript(payload []byte, packagesDir string) ([]byte, error) {
	var buf bytes.Buffer
	err := scriptTemplate.Execute(&buf, struct {
		Payload       string
		PackagesDir   string
		SchemaVersion int
	}{
		Payload:       strconv.Quote(string(payload)),
		PackagesDir:   strconv.Quote(packagesDir),
		SchemaVersion: SchemaVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render run script: %w", err)
	}
	return buf.Bytes(), nil
}

func lastNonEmptyLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
